package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/saintcloud/saintcloud/internal/metrics"
	"github.com/saintcloud/saintcloud/internal/util/async"
)

// Aggregator builds a Tree from a Directory.
type Aggregator struct {
	dir  Directory
	opts options
}

// NewAggregator returns an Aggregator reading from dir.
func NewAggregator(dir Directory, opts ...Option) *Aggregator {
	return &Aggregator{dir: dir, opts: newOptions(opts)}
}

// stage fetches one level of the tree. tasks derives the stage's requests
// from the levels already attached to the tree.
type stage struct {
	name  string
	tasks func(*Tree) []async.Task
}

// Aggregate lists every project (or only the one whose ID equals
// projectFilter, when it is not empty) and fills in its services, their
// versions and the versions' instances.
//
// Levels are fetched in order. Within a level all requests run concurrently
// and the next level starts only after every one of them has returned. A
// not-found response leaves that node's children unset. Any other error
// stops the walk and is returned; the partial tree is discarded.
func (a *Aggregator) Aggregate(ctx context.Context, projectFilter string) (*Tree, error) {
	logger := logr.FromContextOrDiscard(ctx)

	projects, err := a.dir.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	tree := &Tree{}
	for _, p := range projects {
		if projectFilter != "" && p.ID != projectFilter {
			continue
		}
		tree.Projects = append(tree.Projects, &Project{ID: p.ID})
	}
	logger.V(1).Info("listed projects", "total", len(projects), "selected", len(tree.Projects))

	stages := []stage{
		{name: "services", tasks: a.serviceTasks},
		{name: "versions", tasks: a.versionTasks},
		{name: "instances", tasks: a.instanceTasks},
	}
	for _, s := range stages {
		tasks := s.tasks(tree)
		logger.V(1).Info("fetching stage", "stage", s.name, "requests", len(tasks))

		start := time.Now()
		if err := async.RunParallel(ctx, tasks, a.opts.concurrency); err != nil {
			return nil, err
		}
		metrics.RecordStage(s.name, len(tasks), time.Since(start))
	}

	return tree, nil
}

func (a *Aggregator) serviceTasks(tree *Tree) []async.Task {
	var tasks []async.Task
	for _, p := range tree.Projects {
		tasks = append(tasks, async.Task{
			Name: "list services for " + p.ID,
			Func: func(ctx context.Context) error {
				return attach(ctx,
					func(ctx context.Context) ([]Service, error) { return a.dir.ListServices(ctx, p.ID) },
					func(services []Service) {
						p.Services = make([]*Service, len(services))
						for i, s := range services {
							p.Services[i] = &Service{ID: s.ID}
						}
					})
			},
		})
	}
	return tasks
}

func (a *Aggregator) versionTasks(tree *Tree) []async.Task {
	var tasks []async.Task
	for _, p := range tree.Projects {
		for _, s := range p.Services {
			tasks = append(tasks, async.Task{
				Name: fmt.Sprintf("list versions for %s/%s", p.ID, s.ID),
				Func: func(ctx context.Context) error {
					return attach(ctx,
						func(ctx context.Context) ([]Version, error) { return a.dir.ListVersions(ctx, p.ID, s.ID) },
						func(versions []Version) {
							s.Versions = make([]*Version, len(versions))
							for i, v := range versions {
								s.Versions[i] = &Version{ID: v.ID, CreateTime: v.CreateTime}
							}
						})
				},
			})
		}
	}
	return tasks
}

func (a *Aggregator) instanceTasks(tree *Tree) []async.Task {
	var tasks []async.Task
	for _, p := range tree.Projects {
		for _, s := range p.Services {
			for _, v := range s.Versions {
				tasks = append(tasks, async.Task{
					Name: fmt.Sprintf("list instances for %s/%s/%s", p.ID, s.ID, v.ID),
					Func: func(ctx context.Context) error {
						return attach(ctx,
							func(ctx context.Context) ([]Instance, error) { return a.dir.ListInstances(ctx, p.ID, s.ID, v.ID) },
							func(instances []Instance) { v.Instances = instances })
					},
				})
			}
		}
	}
	return tasks
}

// attach lists the children of one node and hands them to set. A not-found
// error leaves the node untouched and is not reported.
func attach[T any](ctx context.Context, list func(context.Context) ([]T, error), set func([]T)) error {
	children, err := list(ctx)
	if errors.Is(err, ErrNotFound) {
		logr.FromContextOrDiscard(ctx).V(1).Info("parent no longer exists, treating as childless", "error", err.Error())
		return nil
	}
	if err != nil {
		return err
	}
	set(children)
	return nil
}
