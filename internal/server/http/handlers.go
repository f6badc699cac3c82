package http

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/dmitrijs2005/calcapi/internal/common"
	"github.com/dmitrijs2005/calcapi/internal/server/models"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ArithmeticRequest uses pointers so a missing operand can be told apart
// from zero.
type ArithmeticRequest struct {
	Num1 *float64 `json:"num1"`
	Num2 *float64 `json:"num2"`
}

type RootRequest struct {
	Number *float64 `json:"number"`
}

type OperationResponse struct {
	Result    float64 `json:"result"`
	Operation string  `json:"operation"`
	Num1      float64 `json:"num1"`
	Num2      float64 `json:"num2"`
}

type binaryOperation func(ctx context.Context, userID string, num1, num2 float64) (*models.Operation, error)

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, msgMalformedPayload)
		return
	}

	s.logger.Info(r.Context(), "Registration request", "username", req.Username)

	token, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: common.TokenType})
}

// handleLogin accepts OAuth2-style form fields or a JSON body.
func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, msgMalformedPayload)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "Request body is not a valid form")
			return
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: common.TokenType})
}

func (s *HTTPServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())
	s.logger.Info(r.Context(), "Root endpoint accessed", "username", identity.Username)
	writeJSON(w, http.StatusOK, map[string]string{"Hello": "World"})
}

func (s *HTTPServer) handleArithmetic(fn binaryOperation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ArithmeticRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, msgMalformedPayload)
			return
		}
		if req.Num1 == nil || req.Num2 == nil {
			writeError(w, http.StatusUnprocessableEntity, "num1 and num2 are required numbers")
			return
		}

		identity, _ := IdentityFromContext(r.Context())
		op, err := fn(r.Context(), identity.UserID, *req.Num1, *req.Num2)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}

		s.writeOperation(w, r, identity.Username, op)
	}
}

func (s *HTTPServer) handleRootOperation(w http.ResponseWriter, r *http.Request) {
	var req RootRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, msgMalformedPayload)
		return
	}
	if req.Number == nil {
		writeError(w, http.StatusUnprocessableEntity, "number is a required number")
		return
	}

	identity, _ := IdentityFromContext(r.Context())
	op, err := s.ops.Root(r.Context(), identity.UserID, *req.Number)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeOperation(w, r, identity.Username, op)
}

func (s *HTTPServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	ops, err := s.ops.History(r.Context(), identity.UserID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if ops == nil {
		ops = []*models.Operation{}
	}

	s.logger.Info(r.Context(), "User history accessed", "username", identity.Username, "operation_count", len(ops))
	writeJSON(w, http.StatusOK, ops)
}

func (s *HTTPServer) writeOperation(w http.ResponseWriter, r *http.Request, username string, op *models.Operation) {
	s.metrics.OperationsTotal.WithLabelValues(op.Operation).Inc()
	s.logger.Info(r.Context(), "Operation performed",
		"username", username,
		"operation", op.Operation,
		"num1", op.Num1,
		"num2", op.Num2,
		"result", op.Result,
	)
	writeJSON(w, http.StatusOK, OperationResponse{
		Result:    op.Result,
		Operation: op.Operation,
		Num1:      op.Num1,
		Num2:      op.Num2,
	})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}
