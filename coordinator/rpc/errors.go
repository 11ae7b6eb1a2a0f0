package rpc

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/althof3/votara/coordinator/db"
	"github.com/althof3/votara/network/httputil"
)

// writeError maps store errors onto the API taxonomy. Anything without a
// sentinel identity is an internal fault.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		httputil.HandleError(w, "poll not found", http.StatusNotFound)
	case errors.Is(err, db.ErrNotCreator):
		httputil.HandleError(w, "only the poll creator may do this", http.StatusForbidden)
	case errors.Is(err, db.ErrWrongStatus):
		httputil.HandleError(w, "poll is no longer in draft", http.StatusConflict)
	case errors.Is(err, db.ErrRosterSet):
		httputil.HandleError(w, "membership roster has already been attached", http.StatusConflict)
	case errors.Is(err, db.ErrAlreadyExists):
		httputil.HandleError(w, "a poll with this id already exists", http.StatusConflict)
	default:
		log.WithError(err).Error("Store operation failed")
		httputil.HandleError(w, "internal server error", http.StatusInternalServerError)
	}
}

// writeChainError reports a failed chain interaction as a bad gateway. The
// sentinel text names the cause without leaking RPC internals.
func writeChainError(w http.ResponseWriter, action string, err error) {
	log.WithError(err).Errorf("Chain call failed while trying to %s", action)
	httputil.WriteError(w, &httputil.DefaultJsonError{
		Message: "could not " + action,
		Details: rootCause(err).Error(),
		Code:    http.StatusBadGateway,
	})
}

func rootCause(err error) error {
	return errors.Cause(err)
}
