package testing

import (
	"context"
	"slices"

	"github.com/saintcloud/saintcloud/internal/audit"
)

type versionSpec struct {
	id         string
	createTime string
	instances  []string
}

type serviceSpec struct {
	id       string
	versions []versionSpec
}

type projectSpec struct {
	id       string
	services []serviceSpec
}

// AccountBuilder provides a fluent interface for constructing test
// accounts. Each method returns a new builder (immutable) for chaining.
type AccountBuilder struct {
	projects []projectSpec
}

// NewAccountBuilder creates an empty account.
func NewAccountBuilder() *AccountBuilder {
	return &AccountBuilder{}
}

// WithProject adds a project without services.
func (b *AccountBuilder) WithProject(projectID string) *AccountBuilder {
	nb := b.clone()
	nb.project(projectID)
	return nb
}

// WithService adds a service without versions, creating its project when
// needed.
func (b *AccountBuilder) WithService(projectID, serviceID string) *AccountBuilder {
	nb := b.clone()
	nb.service(projectID, serviceID)
	return nb
}

// WithVersion adds a version with the given instance IDs, creating its
// project and service when needed.
func (b *AccountBuilder) WithVersion(projectID, serviceID, versionID, createTime string, instances ...string) *AccountBuilder {
	nb := b.clone()
	s := nb.service(projectID, serviceID)
	s.versions = append(s.versions, versionSpec{
		id:         versionID,
		createTime: createTime,
		instances:  slices.Clone(instances),
	})
	return nb
}

// Build returns a MockDirectory serving the account. Unknown parents yield
// audit.ErrNotFound. Deletions are recorded but do not change the listing.
func (b *AccountBuilder) Build() *audit.MockDirectory {
	projects := b.clone().projects

	findService := func(projectID, serviceID string) *serviceSpec {
		for i := range projects {
			if projects[i].id != projectID {
				continue
			}
			for j := range projects[i].services {
				if projects[i].services[j].id == serviceID {
					return &projects[i].services[j]
				}
			}
		}
		return nil
	}

	return &audit.MockDirectory{
		ListProjectsFunc: func(_ context.Context) ([]audit.Project, error) {
			out := make([]audit.Project, 0, len(projects))
			for _, p := range projects {
				out = append(out, audit.Project{ID: p.id})
			}
			return out, nil
		},
		ListServicesFunc: func(_ context.Context, projectID string) ([]audit.Service, error) {
			for _, p := range projects {
				if p.id != projectID {
					continue
				}
				out := make([]audit.Service, 0, len(p.services))
				for _, s := range p.services {
					out = append(out, audit.Service{ID: s.id})
				}
				return out, nil
			}
			return nil, audit.ErrNotFound
		},
		ListVersionsFunc: func(_ context.Context, projectID, serviceID string) ([]audit.Version, error) {
			s := findService(projectID, serviceID)
			if s == nil {
				return nil, audit.ErrNotFound
			}
			out := make([]audit.Version, 0, len(s.versions))
			for _, v := range s.versions {
				out = append(out, audit.Version{ID: v.id, CreateTime: v.createTime})
			}
			return out, nil
		},
		ListInstancesFunc: func(_ context.Context, projectID, serviceID, versionID string) ([]audit.Instance, error) {
			s := findService(projectID, serviceID)
			if s == nil {
				return nil, audit.ErrNotFound
			}
			for _, v := range s.versions {
				if v.id != versionID {
					continue
				}
				out := make([]audit.Instance, 0, len(v.instances))
				for _, id := range v.instances {
					out = append(out, audit.Instance{ID: id})
				}
				return out, nil
			}
			return nil, audit.ErrNotFound
		},
	}
}

func (b *AccountBuilder) project(projectID string) *projectSpec {
	for i := range b.projects {
		if b.projects[i].id == projectID {
			return &b.projects[i]
		}
	}
	b.projects = append(b.projects, projectSpec{id: projectID})
	return &b.projects[len(b.projects)-1]
}

func (b *AccountBuilder) service(projectID, serviceID string) *serviceSpec {
	p := b.project(projectID)
	for i := range p.services {
		if p.services[i].id == serviceID {
			return &p.services[i]
		}
	}
	p.services = append(p.services, serviceSpec{id: serviceID})
	return &p.services[len(p.services)-1]
}

func (b *AccountBuilder) clone() *AccountBuilder {
	projects := make([]projectSpec, len(b.projects))
	for i, p := range b.projects {
		services := make([]serviceSpec, len(p.services))
		for j, s := range p.services {
			versions := make([]versionSpec, len(s.versions))
			for k, v := range s.versions {
				v.instances = slices.Clone(v.instances)
				versions[k] = v
			}
			services[j] = serviceSpec{id: s.id, versions: versions}
		}
		projects[i] = projectSpec{id: p.id, services: services}
	}
	return &AccountBuilder{projects: projects}
}
