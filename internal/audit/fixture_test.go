package audit

import (
	"context"
	"time"
)

// fixture describes an account for MockDirectory. Keys are "project",
// "project/service" and "project/service/version".
type fixture struct {
	projects  []string
	services  map[string][]string
	versions  map[string][]Version
	instances map[string][]Instance
}

func (f fixture) directory() *MockDirectory {
	return &MockDirectory{
		ListProjectsFunc: func(_ context.Context) ([]Project, error) {
			projects := make([]Project, len(f.projects))
			for i, id := range f.projects {
				projects[i] = Project{ID: id}
			}
			return projects, nil
		},
		ListServicesFunc: func(_ context.Context, projectID string) ([]Service, error) {
			var services []Service
			for _, id := range f.services[projectID] {
				services = append(services, Service{ID: id})
			}
			return services, nil
		},
		ListVersionsFunc: func(_ context.Context, projectID, serviceID string) ([]Version, error) {
			return f.versions[projectID+"/"+serviceID], nil
		},
		ListInstancesFunc: func(_ context.Context, projectID, serviceID, versionID string) ([]Instance, error) {
			return f.instances[projectID+"/"+serviceID+"/"+versionID], nil
		},
	}
}

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func daysAgo(days int) string {
	return testNow.Add(-time.Duration(days) * 24 * time.Hour).Format(time.RFC3339)
}
