package web

import (
	"net/http"
	"strconv"

	"gardenbook/internal/adapters/form"
	"gardenbook/internal/application"
	"gardenbook/internal/application/commands"
	"gardenbook/internal/domain"
)

func pathKind(r *http.Request) (domain.Kind, error) {
	kind := domain.ParseKind(r.PathValue("kind"))
	if kind == domain.KindUnknown {
		return kind, &application.ValidationError{
			Field:   "kind",
			Message: "unknown record kind: " + r.PathValue("kind"),
		}
	}
	return kind, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, &application.ValidationError{Field: "id", Message: "invalid ID: " + r.PathValue("id")}
	}
	return id, nil
}

// optionalID parses an integer form value; an absent value is nil
func optionalID(r *http.Request, key string) (*int64, error) {
	raw := r.FormValue(key)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &application.ValidationError{Field: key, Message: "invalid ID: " + raw}
	}
	return &id, nil
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	result, err := commands.NewListCommand(s.store, kind).Execute(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, records(result))
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	result, err := commands.NewShowCommand(s.store, kind, id).Execute(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, first(result))
}

// handleSave inserts when the form carries no id and updates otherwise
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.handleError(w, r, &application.ValidationError{Field: "form", Message: err.Error()})
		return
	}
	_, update, err := form.ID(r.PostForm)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var saved any
	ctx := r.Context()
	switch kind {
	case domain.KindClient:
		c, derr := form.DecodeClient(r.PostForm)
		if derr != nil {
			s.handleError(w, r, derr)
			return
		}
		var res *commands.ClientResult
		if update {
			res, err = commands.NewUpdateClientCommand(s.store, c).Execute(ctx)
		} else {
			res, err = commands.NewCreateClientCommand(s.store, c).Execute(ctx)
		}
		if err == nil {
			saved = res.Client
		}
	case domain.KindPlant:
		p, derr := form.DecodePlant(r.PostForm)
		if derr != nil {
			s.handleError(w, r, derr)
			return
		}
		var res *commands.PlantResult
		if update {
			res, err = commands.NewUpdatePlantCommand(s.store, p).Execute(ctx)
		} else {
			res, err = commands.NewCreatePlantCommand(s.store, p).Execute(ctx)
		}
		if err == nil {
			saved = res.Plant
		}
	case domain.KindJob:
		m, derr := form.DecodeJob(r.PostForm)
		if derr != nil {
			s.handleError(w, r, derr)
			return
		}
		var res *commands.JobResult
		if update {
			res, err = commands.NewUpdateJobCommand(s.store, m).Execute(ctx)
		} else {
			res, err = commands.NewCreateJobCommand(s.store, m).Execute(ctx)
		}
		if err == nil {
			saved = res.Job
		}
	}
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	status := http.StatusCreated
	if update {
		status = http.StatusOK
	}
	s.jsonResponse(w, status, saved)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if _, err := commands.NewDeleteCommand(s.store, kind, id).Execute(r.Context()); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	result, err := commands.NewCalendarCommand(s.store, r.PathValue("month")).Execute(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result.Jobs)
}

func (s *Server) handlePlantMonths(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	result, err := commands.NewPlantMonthsCommand(s.store, id).Execute(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result.Months)
}

// handleLink reads the two IDs from the left and right form fields
func (s *Server) handleLink(w http.ResponseWriter, r *http.Request) {
	rel := commands.ParseRelation(r.PathValue("relation"))
	left, err := optionalID(r, "left")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	right, err := optionalID(r, "right")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var l, rt int64
	if left != nil {
		l = *left
	}
	if right != nil {
		rt = *right
	}
	result, err := commands.NewLinkCommand(s.store, rel, l, rt).Execute(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]string{"message": result.Message})
}

// handleUnlink treats a missing left or right query value as unspecified
func (s *Server) handleUnlink(w http.ResponseWriter, r *http.Request) {
	rel := commands.ParseRelation(r.PathValue("relation"))
	left, err := optionalID(r, "left")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	right, err := optionalID(r, "right")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	result, err := commands.NewUnlinkCommand(s.store, rel, left, right).Execute(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"removed": result.Removed})
}

func records(result *commands.ListResult) any {
	switch result.Kind {
	case domain.KindClient:
		return nonNil(result.Clients)
	case domain.KindPlant:
		return nonNil(result.Plants)
	default:
		return nonNil(result.Jobs)
	}
}

func first(result *commands.ListResult) any {
	switch result.Kind {
	case domain.KindClient:
		return result.Clients[0]
	case domain.KindPlant:
		return result.Plants[0]
	default:
		return result.Jobs[0]
	}
}

// nonNil keeps empty lists encoding as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
