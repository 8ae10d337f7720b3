// Package notify runs the post-persistence side effects of an order: the two
// emails and the spreadsheet append. Failures are logged, never returned to
// the caller and never retried.
package notify

import (
	"context"
	"fmt"
	"time"
)

// Task is one independent side effect.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Result is the outcome of one Task.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Fanout starts every task at once and waits for all of them, whatever their
// outcome. Results come back in task order. Tasks get a context detached from
// ctx's cancellation so a dropped client cannot abort a started branch.
func Fanout(ctx context.Context, tasks ...Task) []Result {
	type indexed struct {
		i int
		r Result
	}
	detached := context.WithoutCancel(ctx)
	ch := make(chan indexed, len(tasks))

	for i, t := range tasks {
		go func(i int, t Task) {
			start := time.Now()
			var err error
			func() {
				defer func() {
					if p := recover(); p != nil {
						err = fmt.Errorf("panic: %v", p)
					}
				}()
				err = t.Run(detached)
			}()
			ch <- indexed{i, Result{Name: t.Name, Err: err, Duration: time.Since(start)}}
		}(i, t)
	}

	results := make([]Result, len(tasks))
	for range tasks {
		r := <-ch
		results[r.i] = r.r
	}
	return results
}
