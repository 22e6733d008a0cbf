// Package jobs runs file mutations off the interaction thread. The
// browser core never blocks on a job: callers submit a mutation, poll
// Events, and refresh the browser when a result arrives.
package jobs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kk-code-lab/vdir/internal/archive"
)

// Kind enumerates the mutations the queue can perform.
type Kind int

const (
	Copy Kind = iota
	Move
	Trash
	Extract
)

func (k Kind) String() string {
	switch k {
	case Copy:
		return "copy"
	case Move:
		return "move"
	case Trash:
		return "trash"
	case Extract:
		return "extract"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Job describes one file mutation. Dst is the destination directory for
// Copy, Move and Extract, and the trash root for Trash.
type Job struct {
	ID   uint64
	Kind Kind
	Src  string
	Dst  string
}

// Result reports a finished job on the events channel.
type Result struct {
	Job Job
	Err error
}

// Queue executes jobs sequentially on a worker goroutine and publishes a
// Result per job. Close drains outstanding jobs before returning.
type Queue struct {
	log    *zap.Logger
	jobs   chan Job
	events chan Result
	seq    atomic.Uint64
	wg     sync.WaitGroup
}

// New starts the worker. A nil logger keeps the queue silent.
func New(log *zap.Logger) *Queue {
	if log == nil {
		log = zap.NewNop()
	}
	q := &Queue{
		log:    log,
		jobs:   make(chan Job, 16),
		events: make(chan Result, 16),
	}
	q.wg.Add(1)
	go q.run()
	return q
}

// Submit enqueues a job and returns its assigned ID.
func (q *Queue) Submit(job Job) uint64 {
	job.ID = q.seq.Add(1)
	q.jobs <- job
	return job.ID
}

// Events returns the completion channel. It closes after Close.
func (q *Queue) Events() <-chan Result {
	return q.events
}

// Close stops accepting jobs, waits for the worker to finish the backlog,
// and closes the events channel.
func (q *Queue) Close() {
	close(q.jobs)
	q.wg.Wait()
	close(q.events)
}

func (q *Queue) run() {
	defer q.wg.Done()
	for job := range q.jobs {
		err := execute(job)
		if err != nil {
			q.log.Error("job failed",
				zap.Uint64("id", job.ID),
				zap.Stringer("kind", job.Kind),
				zap.String("src", job.Src),
				zap.Error(err))
		} else {
			q.log.Info("job done",
				zap.Uint64("id", job.ID),
				zap.Stringer("kind", job.Kind),
				zap.String("src", job.Src))
		}
		q.events <- Result{Job: job, Err: err}
	}
}

func execute(job Job) error {
	switch job.Kind {
	case Copy:
		return copyPath(job.Src, filepath.Join(job.Dst, filepath.Base(job.Src)))
	case Move:
		return movePath(job.Src, filepath.Join(job.Dst, filepath.Base(job.Src)))
	case Trash:
		return trashPath(job.Src, job.Dst)
	case Extract:
		return archive.Extract(job.Src, job.Dst)
	}
	return fmt.Errorf("unknown job kind %d", int(job.Kind))
}

func copyPath(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	switch {
	case info.IsDir():
		return copyDir(src, dst)
	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(src)
		if err != nil {
			return err
		}
		return os.Symlink(target, dst)
	default:
		return copyFile(src, dst, info.Mode())
	}
}

func copyDir(src, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}
	dirents, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, d := range dirents {
		if err := copyPath(filepath.Join(src, d.Name()), filepath.Join(dst, d.Name())); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}

func movePath(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	// Cross-device move: copy then remove.
	if err := copyPath(src, dst); err != nil {
		return err
	}
	return os.RemoveAll(src)
}

// trashPath moves src under the trash root, suffixing the name when a
// previous trashing already claimed it.
func trashPath(src, trashRoot string) error {
	if err := os.MkdirAll(trashRoot, 0o700); err != nil {
		return err
	}
	base := filepath.Base(src)
	dst := filepath.Join(trashRoot, base)
	for n := 1; ; n++ {
		if _, err := os.Lstat(dst); os.IsNotExist(err) {
			break
		}
		dst = filepath.Join(trashRoot, fmt.Sprintf("%s.%d", base, n))
	}
	return movePath(src, dst)
}
