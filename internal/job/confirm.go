package job

import "github.com/shinji-kodama/foamcut/internal/model"

// Confirmer gates encoding on operator approval.
type Confirmer interface {
	// Confirm is called once per job after validation. Returning false
	// rejects the job with model.ErrDeclined.
	Confirm(job *model.Job) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(job *model.Job) (bool, error)

// Confirm calls f(job).
func (f ConfirmFunc) Confirm(job *model.Job) (bool, error) {
	return f(job)
}

// AutoConfirm approves every job.
var AutoConfirm Confirmer = ConfirmFunc(func(*model.Job) (bool, error) { return true, nil })
