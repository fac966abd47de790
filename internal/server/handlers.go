package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/cv-genie/internal/builder"
	"github.com/jonathan/cv-genie/internal/export"
	"github.com/jonathan/cv-genie/internal/schemas"
	"github.com/jonathan/cv-genie/internal/types"
)

// maxBodyBytes bounds request bodies; a full CV is a few kilobytes.
const maxBodyBytes = 1 << 20

// EditRequest is the body of POST /sessions/{id}/edits
type EditRequest struct {
	Section string          `json:"section" validate:"required,section"`
	Index   *int            `json:"index,omitempty"`
	Field   string          `json:"field"`
	Value   json.RawMessage `json:"value" validate:"required"`
}

// TemplateRequest is the body of PUT /sessions/{id}/template
type TemplateRequest struct {
	Template string `json:"template" validate:"required"`
}

// TemplateResponse reports the template actually selected
type TemplateResponse struct {
	Template string `json:"template"`
}

// sectionParams validates the {section} path segment
type sectionParams struct {
	Section string `validate:"required,section"`
}

func (s *Server) session(r *http.Request) (*builder.Session, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, &ErrValidation{Field: "id", Message: "invalid session id"}
	}
	sess, ok := s.store.Get(id)
	if !ok {
		return nil, &ErrSessionNotFound{SessionID: id}
	}
	return sess, nil
}

func (s *Server) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := s.validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

// handleListTemplates returns the template catalogue
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	registry := s.store.Registry()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"default":   registry.DefaultID(),
		"templates": registry.Templates(),
	})
}

// handleCreateSession starts a session, optionally seeded with a record
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.fail(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	record := types.DefaultRecord()
	if len(bytes.TrimSpace(body)) > 0 {
		record, err = schemas.DecodeRecord(body, schemas.FormatJSON)
		if err != nil {
			s.fail(w, err)
			return
		}
	}

	sess := s.store.Create(record)
	s.jsonResponse(w, http.StatusCreated, sess.View())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.View())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.store.Delete(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

// handleEdit applies one section edit
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	var req EditRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	value, err := types.ParseValue(req.Value)
	if err != nil {
		s.fail(w, &ErrValidation{Field: "value", Message: err.Error()})
		return
	}

	sess.ApplyByName(req.Section, req.Index, req.Field, value)
	s.jsonResponse(w, http.StatusOK, sess.View())
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	section, err := s.sectionParam(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	sess.AddItem(section)
	s.jsonResponse(w, http.StatusOK, sess.View())
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	section, err := s.sectionParam(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.fail(w, &ErrValidation{Field: "index", Message: "must be an integer"})
		return
	}

	sess.RemoveItem(section, index)
	s.jsonResponse(w, http.StatusOK, sess.View())
}

func (s *Server) sectionParam(r *http.Request) (types.SectionID, error) {
	params := sectionParams{Section: r.PathValue("section")}
	if err := s.validate.Struct(params); err != nil {
		return 0, validationError(err)
	}
	id, _ := types.ParseSectionID(params.Section)
	return id, nil
}

// handleSelectTemplate switches the template. Unknown ids fall back to the
// default and the response says which one was chosen.
func (s *Server) handleSelectTemplate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	var req TemplateRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, TemplateResponse{Template: sess.SelectTemplate(req.Template)})
}

// handlePreview renders the session as a standalone HTML page
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	tmpl := r.URL.Query().Get("template")
	if tmpl == "" {
		tmpl = sess.Template()
	}

	var buf bytes.Buffer
	if err := s.store.Registry().WriteDocument(&buf, sess.Record(), tmpl); err != nil {
		s.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Warn("failed to write preview", zap.Error(err))
	}
}

// handleEvents streams session changes as SSE until the client disconnects
// or the session is closed.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	events, cancel := sess.Subscribe()
	defer cancel()

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	// The first event lets a client sync without a separate GET.
	view := sess.View()
	if err := sse.Send(builder.Event{Type: builder.EventUpdated, Version: view.Version}); err != nil {
		return
	}

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				sse.WriteEvent("closed", map[string]string{"session": sess.ID.String()}) //nolint:errcheck
				return
			}
			if err := sse.Send(ev); err != nil {
				s.logger.Debug("event stream write failed", zap.Error(err))
				return
			}
		case <-keepAlive.C:
			if err := sse.WriteComment("keep-alive"); err != nil {
				return
			}
		}
	}
}

// handleExport rasterizes the session's preview and returns it as a download
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	format := s.exportFormat
	if q := r.URL.Query().Get("format"); q != "" {
		format, err = export.ParseFormat(q)
		if err != nil {
			s.fail(w, &ErrValidation{Field: "format", Message: err.Error()})
			return
		}
	}

	result, err := sess.Export(r.Context(), s.rasterizer, format)
	if err != nil {
		s.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		s.logger.Warn("failed to write export", zap.Error(err))
	}
}
