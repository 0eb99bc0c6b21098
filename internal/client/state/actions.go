package state

import "github.com/dmitrijs2005/authdemo/internal/client/models"

// Action is a state change request. The set is closed; see Reduce.
type Action interface {
	action()
}

type (
	SetEmail        string
	SetPassword     string
	SetTargetUserID string

	RequestStarted struct{}

	RequestSucceeded struct {
		Payload models.Payload
	}

	RequestFailed struct {
		Message string
	}

	SessionEstablished struct {
		User models.User
	}

	SessionCleared struct{}
)

func (SetEmail) action()           {}
func (SetPassword) action()        {}
func (SetTargetUserID) action()    {}
func (RequestStarted) action()     {}
func (RequestSucceeded) action()   {}
func (RequestFailed) action()      {}
func (SessionEstablished) action() {}
func (SessionCleared) action()     {}

// UnknownErrorMessage stands in for a failure whose error text is empty, so
// that Err is never "" after a failed request.
const UnknownErrorMessage = "unknown error"

// Reduce returns the state that results from applying a to s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetEmail:
		s.Form.Email = string(a)
	case SetPassword:
		s.Form.Password = string(a)
	case SetTargetUserID:
		s.Form.TargetUserID = string(a)

	case RequestStarted:
		s.Pending++
	case RequestSucceeded:
		s.Pending = completed(s.Pending)
		p := a.Payload
		s.Response = &p
		s.Err = ""
	case RequestFailed:
		s.Pending = completed(s.Pending)
		s.Response = nil
		s.Err = a.Message
		if s.Err == "" {
			s.Err = UnknownErrorMessage
		}

	case SessionEstablished:
		u := a.User
		s.Session = Session{SignedIn: true, User: &u}
	case SessionCleared:
		s.Session = Session{}
	}
	return s
}

func completed(pending int) int {
	if pending > 0 {
		return pending - 1
	}
	return 0
}
