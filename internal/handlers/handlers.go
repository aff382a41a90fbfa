package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"preconstruction/internal/config"
	"preconstruction/internal/procore"
	"preconstruction/models"
)

const maxBodyBytes = 1048576

// Handler связывает маршруты с демо-хранилищем, Procore и журналом
type Handler struct {
	Store   StorageInterface
	Procore ProcoreAPI
	Journal SyncLogJournal
	Config  *config.Config
}

// NewHandler создает новый Handler. journal может быть nil.
func NewHandler(store StorageInterface, api ProcoreAPI, journal SyncLogJournal, cfg *config.Config) *Handler {
	return &Handler{Store: store, Procore: api, Journal: journal, Config: cfg}
}

// PingHandler отвечает "ok" для проверки сервера
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// live читается на каждый запрос
func (h *Handler) live() bool {
	return h.Config.Mode == config.ModeLive
}

// listResponse: общий конверт списков
type listResponse[T any] struct {
	ProjectID int         `json:"project_id,omitempty"`
	Items     []T         `json:"items"`
	Meta      models.Meta `json:"meta"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// readJSON декодирует тело запроса. Битый JSON превращается в пустое значение
// и дальше отсекается обычной валидацией.
func readJSON[T any](w http.ResponseWriter, r *http.Request) T {
	var zero T
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return zero
	}
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return zero
	}
	return v
}

// accessToken достаёт bearer-токен из cookie; без него отвечает 401
func (h *Handler) accessToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	c, err := r.Cookie(h.Config.TokenCookie)
	if err != nil || c.Value == "" {
		writeError(w, http.StatusUnauthorized, "Procore is not connected")
		return "", false
	}
	return c.Value, true
}

// upstreamError переводит ошибку Procore в ответ клиенту. Тело ответа Procore
// только логируется.
func (h *Handler) upstreamError(w http.ResponseWriter, op string, err error) {
	var upstream *procore.UpstreamError
	switch {
	case errors.Is(err, procore.ErrMissingToken):
		writeError(w, http.StatusUnauthorized, "Procore is not connected")
	case errors.Is(err, procore.ErrMissingCompany):
		log.Printf("%s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "Procore company is not configured")
	case errors.As(err, &upstream):
		log.Printf("%s: procore status %d: %s", op, upstream.StatusCode, upstream.Body)
		writeError(w, http.StatusBadGateway, "Procore request failed")
	default:
		log.Printf("%s: %v", op, err)
		writeError(w, http.StatusBadGateway, "Procore request failed")
	}
}

// recordSyncLog копирует запись в журнал, если он настроен. Ошибка журнала
// не влияет на ответ.
func (h *Handler) recordSyncLog(ctx context.Context, e *models.SyncLogEntry) {
	if h.Journal == nil || e == nil {
		return
	}
	if err := h.Journal.RecordSyncLog(ctx, *e); err != nil {
		log.Printf("failed to journal sync log %d: %v", e.ID, err)
	}
}
