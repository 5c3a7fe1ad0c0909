package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/jumpaku/accountd/internal/apperr"
	"github.com/jumpaku/accountd/internal/result"
	"github.com/jumpaku/accountd/internal/server/accounts"
)

type signupRequest struct {
	LoginID     string `json:"loginId"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type signupResponse struct {
	Tag       string `json:"tag"`
	AccountID int64  `json:"accountId"`
}

type issueTokenRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

type issueTokenResponse struct {
	Tag string `json:"tag"`
	JWT string `json:"jwt"`
}

type verifyTokenResponse struct {
	Tag       string `json:"tag"`
	AccountID int64  `json:"accountId"`
}

type closeResponse struct {
	Tag string `json:"tag"`
}

type pingResponse struct {
	Tag    string `json:"tag"`
	Status string `json:"status"`
}

// decodeBody strictly decodes the JSON request body into dst.
func decodeBody(r *http.Request, dst any) *apperr.Error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Wrap(err, apperr.InvalidParams, "Invalid request body")
	}
	return nil
}

// bearerToken extracts the token from "Authorization: Bearer <jwt>". A missing
// or malformed header is an authentication failure, not a parameter error: the
// caller has failed to present credentials.
func bearerToken(r *http.Request) (string, *apperr.Error) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", apperr.New(apperr.AuthenticationFailed, "Invalid Authorization header")
	}
	return token, nil
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req signupRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, err)
		return
	}

	res := accounts.Exec(r.Context(), s.accounts, func(ctx context.Context, m *accounts.Model) result.Result[int64] {
		return m.Create(ctx, accounts.CreateParams{
			LoginID:     req.LoginID,
			Password:    req.Password,
			DisplayName: req.DisplayName,
		})
	})
	if res.IsFailure() {
		writeFailure(w, res.Err())
		return
	}
	writeSuccess(w, signupResponse{Tag: "Success", AccountID: res.Value()})
}

// handleIssueToken authenticates the credentials and issues a token inside
// the same transaction, so the status check and the issuance see one state.
func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req issueTokenRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, err)
		return
	}

	res := accounts.Exec(r.Context(), s.accounts, func(ctx context.Context, m *accounts.Model) result.Result[string] {
		return result.FlatMap(m.Authenticate(ctx, req.LoginID, req.Password),
			func(accountID int64) result.Result[string] {
				return m.IssueToken(ctx, accountID)
			})
	})
	if res.IsFailure() {
		writeFailure(w, res.Err())
		return
	}
	writeSuccess(w, issueTokenResponse{Tag: "Success", JWT: res.Value()})
}

func (s *Server) handleVerifyToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token, aerr := bearerToken(r)
	if aerr != nil {
		writeFailure(w, aerr)
		return
	}

	res := accounts.Exec(r.Context(), s.accounts, func(ctx context.Context, m *accounts.Model) result.Result[int64] {
		return m.VerifyToken(ctx, token)
	})
	if res.IsFailure() {
		writeFailure(w, res.Err())
		return
	}
	writeSuccess(w, verifyTokenResponse{Tag: "Success", AccountID: res.Value()})
}

// handleClose resolves the bearer token to an account and closes it, all in
// one transaction.
func (s *Server) handleClose(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token, aerr := bearerToken(r)
	if aerr != nil {
		writeFailure(w, aerr)
		return
	}

	res := accounts.Exec(r.Context(), s.accounts, func(ctx context.Context, m *accounts.Model) result.Result[result.Void] {
		return result.FlatMap(m.VerifyToken(ctx, token),
			func(accountID int64) result.Result[result.Void] {
				return m.Close(ctx, accountID)
			})
	})
	if res.IsFailure() {
		writeFailure(w, res.Err())
		return
	}
	writeSuccess(w, closeResponse{Tag: "Success"})
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeSuccess(w, pingResponse{Tag: "Success", Status: "OK"})
}
