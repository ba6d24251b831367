package audit

import "time"

// Scan returns every version in tree that has no instances, in tree order:
// projects, then services, then versions, each in listing order.
//
// A version with a nil instance list and one with an empty list are both
// orphans. Age is measured from the version's creation time to now; when the
// creation time is missing or malformed the candidate's AgeKnown is false.
// No minimum age is applied.
func Scan(tree *Tree, now time.Time) []OrphanCandidate {
	if tree == nil {
		return nil
	}

	var orphans []OrphanCandidate
	for _, p := range tree.Projects {
		for _, s := range p.Services {
			for _, v := range s.Versions {
				if len(v.Instances) > 0 {
					continue
				}
				age, known := versionAge(v.CreateTime, now)
				orphans = append(orphans, OrphanCandidate{
					VersionRef: VersionRef{ProjectID: p.ID, ServiceID: s.ID, VersionID: v.ID},
					CreateTime: v.CreateTime,
					Age:        age,
					AgeKnown:   known,
				})
			}
		}
	}
	return orphans
}

func versionAge(createTime string, now time.Time) (time.Duration, bool) {
	if createTime == "" {
		return 0, false
	}
	created, err := time.Parse(time.RFC3339, createTime)
	if err != nil {
		return 0, false
	}
	return now.Sub(created), true
}
