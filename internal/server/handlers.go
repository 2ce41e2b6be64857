package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-regform/internal/observability"
	"github.com/goliatone/go-regform/pkg/contract"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/state"
	"github.com/goliatone/go-regform/pkg/submission"
)

type rejection struct {
	Errors     map[string]string  `json:"errors"`
	Violations []model.FieldError `json:"violations"`
}

type badRequest struct {
	Error    string             `json:"error"`
	Problems []contract.Problem `json:"problems,omitempty"`
}

type acceptance struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, http.StatusOK, model.Snapshot{}, nil, s.newID())
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	jsonBody := isJSON(r.Header.Get("Content-Type"))
	wantsJSON := jsonBody || acceptsJSON(r.Header.Get("Accept"))

	msgs, formID, err := s.decode(r, jsonBody)
	if err != nil {
		s.metrics.RecordSubmission(observability.OutcomeInvalid, nil)
		fields := []zap.Field{zap.String("request_id", middleware.GetReqID(r.Context()))}
		var payloadErr *contract.PayloadError
		if errors.As(err, &payloadErr) {
			fields = append(fields, zap.Any("problems", payloadErr.Problems))
		} else {
			fields = append(fields, zap.Error(err))
		}
		s.logger.Info("malformed submission", fields...)
		s.respondBadRequest(w, wantsJSON, err)
		return
	}
	if formID == "" {
		formID = s.newID()
	}

	f := form.New(form.WithValidator(s.validator), form.WithAcceptFunc(s.accept))
	if err := f.Dispatch(msgs...); err != nil {
		s.metrics.RecordSubmission(observability.OutcomeInvalid, nil)
		s.respondBadRequest(w, wantsJSON, err)
		return
	}

	result, err := f.Submit(r.Context())
	if err != nil {
		s.metrics.RecordSubmission(observability.OutcomeFailed, nil)
		s.logger.Error("submission hand-off failed",
			zap.String("form_id", formID),
			zap.Error(err),
		)
		if wantsJSON {
			respondError(w, http.StatusInternalServerError, "submission could not be processed")
			return
		}
		http.Error(w, "submission could not be processed", http.StatusInternalServerError)
		return
	}

	if !result.Valid() {
		s.metrics.RecordSubmission(observability.OutcomeRejected, result.Errors)
		s.logger.Info("submission rejected",
			zap.String("form_id", formID),
			zap.Strings("fields", fieldNames(result.Errors)),
		)
		if wantsJSON {
			respondJSON(w, http.StatusUnprocessableEntity, rejection{
				Errors:     result.Errors.Strings(),
				Violations: result.Violations,
			})
			return
		}
		s.renderForm(w, r, http.StatusUnprocessableEntity, f.Snapshot(), f.Errors(), formID)
		return
	}

	id := s.newID()
	snapshot := f.Snapshot()
	s.metrics.RecordSubmission(observability.OutcomeAccepted, nil)
	s.logger.Info("submission accepted",
		zap.String("form_id", formID),
		zap.String("submission_id", id),
	)

	if wantsJSON {
		respondJSON(w, http.StatusCreated, acceptance{ID: id, Data: snapshot.Public()})
		return
	}
	page, err := s.html.RenderConfirmation(r.Context(), s.layout, snapshot, id, s.theme)
	if err != nil {
		s.logger.Error("render confirmation", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, page)
}

// decode turns the request body into state messages. JSON bodies are checked
// against the published contract before decoding.
func (s *Server) decode(r *http.Request, jsonBody bool) ([]state.Msg, string, error) {
	if jsonBody {
		var payload map[string]any
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&payload); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, "", err
			}
			return nil, "", errors.New("request body must be a JSON object")
		}
		if err := s.contract.CheckPayload(payload); err != nil {
			return nil, "", err
		}
		formID, _ := payload[render.FormIDField].(string)
		msgs, err := submission.FromJSON(payload)
		return msgs, formID, err
	}

	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", err
		}
		return nil, "", errors.New("request body is not a valid form post")
	}
	msgs, err := submission.FromValues(r.PostForm)
	return msgs, r.PostForm.Get(render.FormIDField), err
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, values model.Snapshot, errs model.ErrorMap, formID string) {
	page, err := s.html.Render(r.Context(), s.layout, render.RenderOptions{
		Action: contract.SubmitPath,
		Values: values,
		Errors: errs,
		Hidden: render.MergeHiddenFields(nil, render.FormID(formID)),
		Theme:  s.theme,
	})
	if err != nil {
		s.logger.Error("render form", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, page)
}

func (s *Server) handleContract(w http.ResponseWriter, _ *http.Request) {
	data, err := s.contract.MarshalJSON()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "contract unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondBadRequest(w http.ResponseWriter, wantsJSON bool, err error) {
	var tooLarge *http.MaxBytesError
	status := http.StatusBadRequest
	if errors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	message := err.Error()
	var payloadErr *contract.PayloadError
	if errors.As(err, &payloadErr) {
		message = "payload does not match request schema"
	}
	if wantsJSON {
		body := badRequest{Error: message}
		if payloadErr != nil {
			body.Problems = payloadErr.Problems
		}
		respondJSON(w, status, body)
		return
	}
	http.Error(w, message, status)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func writeHTML(w http.ResponseWriter, status int, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(page)
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func acceptsJSON(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == "application/json" {
			return true
		}
	}
	return false
}

func fieldNames(errs model.ErrorMap) []string {
	fields := errs.Fields()
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = string(field)
	}
	return out
}
