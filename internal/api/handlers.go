package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/saascontratos/contratos/internal/auth"
	"github.com/saascontratos/contratos/internal/contracts"
	"github.com/saascontratos/contratos/internal/currency"
	"github.com/saascontratos/contratos/internal/document"
	"github.com/saascontratos/contratos/internal/domain"
	"github.com/saascontratos/contratos/internal/extenso"
	"github.com/saascontratos/contratos/internal/ingestion"
	"github.com/saascontratos/contratos/internal/logger"
	"github.com/saascontratos/contratos/internal/repository"
)

const maxUploadBytes = 32 << 20

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	authSvc      *auth.Service
	tokens       *auth.Tokens
	contractSvc  *contracts.Service
	ingestionSvc *ingestion.Service
	cookieSecure bool
}

// --- helpers ---

type errorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("[api] encode error", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, details ...string) {
	writeJSON(w, status, errorBody{Error: msg, Details: details})
}

// writeServiceError maps service errors onto HTTP responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "Dados inválidos.", verr.Messages...)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Contrato não encontrado.")
	default:
		logger.WithContext(r.Context()).Error("[api] request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Erro interno.")
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return def
	}
	return v
}

func contractID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handlers) setSession(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// --- Health ---

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// --- SpellAmount ---

func (h *Handlers) SpellAmount(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("valor")
	amount, ok := currency.ParseAmount(raw)
	if !ok {
		writeError(w, http.StatusBadRequest, "Valor inválido.")
		return
	}

	words, err := extenso.Spell(amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Valor fora do intervalo suportado.", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"valor":   currency.FormatBRL(amount),
		"extenso": words,
	})
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	u, err := h.authSvc.Register(r.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, auth.ErrEmailTaken) {
		writeError(w, http.StatusConflict, "Email já cadastrado.")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.startSession(w, r, http.StatusCreated, u)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	u, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Credenciais inválidas.")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.startSession(w, r, http.StatusOK, u)
}

func (h *Handlers) startSession(w http.ResponseWriter, r *http.Request, status int, u *domain.User) {
	token, expiresAt, err := h.tokens.Issue(u.ID, u.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.setSession(w, token, expiresAt)
	writeJSON(w, status, sessionResponse{
		User:      u,
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Você saiu do sistema."})
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.authSvc.User(r.Context(), userIDFrom(r.Context()))
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "Sessão inválida ou expirada.")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// --- Dashboard ---

func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.contractSvc.Dashboard(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_contracts": d.Stats.Total,
		"by_status":       d.Stats.ByStatus,
		"total_value":     currency.FormatBRL(d.Stats.TotalValue),
		"recent":          d.Recent,
	})
}

// --- Contracts ---

func (h *Handlers) ListContracts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ContractFilter{
		UserID: userIDFrom(r.Context()),
		Status: q.Get("status"),
		City:   q.Get("city"),
		Query:  q.Get("q"),
		Page:   parseIntDefault(q.Get("page"), 1),
		Limit:  parseIntDefault(q.Get("limit"), 50),
	}

	list, total, err := h.contractSvc.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"contracts": list,
		"total":     total,
		"page":      filter.Page,
		"limit":     filter.Limit,
	})
}

func (h *Handlers) CreateContract(w http.ResponseWriter, r *http.Request) {
	var in contracts.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	c, err := h.contractSvc.Create(r.Context(), userIDFrom(r.Context()), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handlers) GetContract(w http.ResponseWriter, r *http.Request) {
	id, ok := contractID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Contrato não encontrado.")
		return
	}

	c, err := h.contractSvc.Get(r.Context(), userIDFrom(r.Context()), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// GetContractForm returns the stored contract as editable form values.
func (h *Handlers) GetContractForm(w http.ResponseWriter, r *http.Request) {
	id, ok := contractID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Contrato não encontrado.")
		return
	}

	c, err := h.contractSvc.Get(r.Context(), userIDFrom(r.Context()), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contracts.InputFrom(c))
}

func (h *Handlers) UpdateContract(w http.ResponseWriter, r *http.Request) {
	id, ok := contractID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Contrato não encontrado.")
		return
	}

	var in contracts.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	c, err := h.contractSvc.Update(r.Context(), userIDFrom(r.Context()), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) DeleteContract(w http.ResponseWriter, r *http.Request) {
	id, ok := contractID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Contrato não encontrado.")
		return
	}

	if err := h.contractSvc.Delete(r.Context(), userIDFrom(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Contrato excluído."})
}

func (h *Handlers) GetContractDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := contractID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Contrato não encontrado.")
		return
	}

	sections, err := h.contractSvc.Document(r.Context(), userIDFrom(r.Context()), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"title":    document.Title,
		"sections": sections,
	})
}

func (h *Handlers) GetContractPDF(w http.ResponseWriter, r *http.Request) {
	id, ok := contractID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Contrato não encontrado.")
		return
	}

	var buf bytes.Buffer
	if err := h.contractSvc.Render(r.Context(), userIDFrom(r.Context()), id, &buf); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", h.contractSvc.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="contrato_%d.pdf"`, id))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.WithContext(r.Context()).Warn("[api] write pdf", "error", err)
	}
}

// --- ImportContracts ---

func (h *Handlers) ImportContracts(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Formulário inválido.", err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Arquivo é obrigatório.")
		return
	}
	defer file.Close()

	format := domain.ImportFormat(r.FormValue("format"))
	if format == "" {
		format = domain.FormatFromFilename(header.Filename)
	}
	if format == "" {
		writeError(w, http.StatusBadRequest, "Formato é obrigatório (csv ou json).")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("read upload: %w", err))
		return
	}

	result, err := h.ingestionSvc.Import(r.Context(), userIDFrom(r.Context()), data, format)
	switch {
	case errors.Is(err, ingestion.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, "Formato não suportado. Use csv ou json.")
		return
	case errors.Is(err, ingestion.ErrParse):
		writeError(w, http.StatusUnprocessableEntity, "Arquivo inválido.", err.Error())
		return
	case err != nil:
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
