package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/adapters/identity/memdir"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/ports/identity"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/router"
)

func newTestServer(t *testing.T, dir *memdir.Directory) *httptest.Server {
	t.Helper()

	wiring := router.New(router.Options{
		AuthVerifier:  nil, // modo dev: claims por headers X-Debug-*
		Directory:     dir,
		AcceptURLBase: "https://app.example.com",
	})
	ts := httptest.NewServer(wiring.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_InvitationTokenFlow(t *testing.T) {
	ts := newTestServer(t, memdir.New())

	owner := debugUser{ID: "owner-1", Email: "ana@example.com"}
	bob := debugUser{ID: "bob-1", Email: "bob@example.com"}

	// 1) Owner crea el perfil del bebé
	babyID := createBaby(t, ts.URL, owner, map[string]any{
		"name": "Luna",
		"sex":  "female",
	})

	// 2) Bob todavía no ve nada
	{
		st, _ := doReq(t, ts.URL, "GET", "/babies/"+babyID, bob, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 before grant, got %d", st)
		}
	}

	// 3) Owner invita a bob por email => invitación pending con token
	var token string
	{
		st, body := doReq(t, ts.URL, "POST", "/babies/"+babyID+"/invitations", owner, map[string]any{
			"email": "Bob@Example.com",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 invite, got %d body=%s", st, string(body))
		}
		var resp struct {
			GrantedDirectly bool   `json:"granted_directly"`
			Token           string `json:"token"`
			AcceptURL       string `json:"accept_url"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.GrantedDirectly {
			t.Fatalf("expected invitation path, got direct grant body=%s", string(body))
		}
		if resp.Token == "" {
			t.Fatalf("invite: missing token body=%s", string(body))
		}
		if !strings.Contains(resp.AcceptURL, resp.Token) {
			t.Fatalf("accept URL must carry the token body=%s", string(body))
		}
		token = resp.Token
	}

	// 4) Preview sin sesión => awaiting_auth
	{
		st, body := doReq(t, ts.URL, "GET", "/invitations/token/"+token, debugUser{}, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 preview, got %d body=%s", st, string(body))
		}
		var resp struct {
			State string `json:"state"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.State != "awaiting_auth" {
			t.Fatalf("expected awaiting_auth, got %q", resp.State)
		}
	}

	// 5) Accept con la cuenta equivocada => 403 recuperable, nombra el email
	{
		eve := debugUser{ID: "eve-1", Email: "eve@example.com"}
		st, body := doReq(t, ts.URL, "POST", "/invitations/token/"+token+"/accept", eve, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 email mismatch, got %d body=%s", st, string(body))
		}
		if !strings.Contains(string(body), "bob@example.com") {
			t.Fatalf("mismatch must name the invited email body=%s", string(body))
		}
	}

	// 6) Accept con la cuenta de bob => accepted + grant
	{
		st, body := doReq(t, ts.URL, "POST", "/invitations/token/"+token+"/accept", bob, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 accept, got %d body=%s", st, string(body))
		}
		var resp struct {
			State string `json:"state"`
			Grant struct {
				Role      string  `json:"role"`
				GrantedBy *string `json:"granted_by"`
			} `json:"grant"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.State != "accepted" {
			t.Fatalf("expected accepted, got %q body=%s", resp.State, string(body))
		}
		if resp.Grant.Role != "caregiver" {
			t.Fatalf("expected caregiver grant body=%s", string(body))
		}
		if resp.Grant.GrantedBy == nil || *resp.Grant.GrantedBy != owner.ID {
			t.Fatalf("grantedBy must be the inviter body=%s", string(body))
		}
	}

	// 7) Bob ya ve el perfil y puede registrar
	{
		st, body := doReq(t, ts.URL, "GET", "/babies/"+babyID, bob, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get baby by bob, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/babies/"+babyID+"/records", bob, map[string]any{
			"kind":        "feeding",
			"occurred_at": time.Now().UTC().Format(time.RFC3339),
			"amount":      120,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create record by bob, got %d body=%s", st, string(body))
		}
		var rec struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &rec)

		st, body = doReq(t, ts.URL, "GET", "/babies/"+babyID+"/records/"+rec.ID, owner, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get record, got %d body=%s", st, string(body))
		}
	}

	// 8) Reusar el token: para bob es éxito idempotente; para cualquier
	// otro principal el token consumido es terminal.
	{
		st, body := doReq(t, ts.URL, "POST", "/invitations/token/"+token+"/accept", bob, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 idempotent reuse, got %d body=%s", st, string(body))
		}
		var resp struct {
			State string `json:"state"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.State != "accepted" {
			t.Fatalf("expected accepted on reuse, got %q", resp.State)
		}
	}
	{
		eve := debugUser{ID: "eve-1", Email: "eve@example.com"}
		st, body := doReq(t, ts.URL, "POST", "/invitations/token/"+token+"/accept", eve, nil)
		if st != http.StatusGone {
			t.Fatalf("expected 410 reuse by another principal, got %d body=%s", st, string(body))
		}
		var resp struct {
			Reason string `json:"reason"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Reason != "already_accepted" {
			t.Fatalf("expected already_accepted, got %q", resp.Reason)
		}
	}

	// 9) Owner ve los dos grants
	{
		st, body := doReq(t, ts.URL, "GET", "/babies/"+babyID+"/caregivers", owner, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list caregivers, got %d body=%s", st, string(body))
		}
		var grants []struct {
			UserID string `json:"user_id"`
			Role   string `json:"role"`
		}
		_ = json.Unmarshal(body, &grants)
		if len(grants) != 2 {
			t.Fatalf("expected 2 grants, got %d body=%s", len(grants), string(body))
		}
	}

	// 10) Owner revoca a bob; bob pierde acceso de inmediato
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/babies/"+babyID+"/caregivers/"+bob.ID, owner, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 revoke, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/babies/"+babyID, bob, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 get baby after revoke, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/babies/"+babyID+"/records", bob, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 list records after revoke, got %d", st)
		}
	}
	{
		// El token viejo no resucita el acceso revocado
		st, _ := doReq(t, ts.URL, "POST", "/invitations/token/"+token+"/accept", bob, nil)
		if st != http.StatusGone {
			t.Fatalf("expected 410 re-accept after revoke, got %d", st)
		}
	}

	// 11) El grant owner no es revocable
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/babies/"+babyID+"/caregivers/"+owner.ID, owner, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 revoking the owner grant, got %d", st)
		}
	}

	// 12) Token desconocido => 404
	{
		st, _ := doReq(t, ts.URL, "GET", "/invitations/token/no-such-token", debugUser{}, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown token, got %d", st)
		}
	}
}

func TestHTTP_Invite_ExistingAccount_GrantsDirectly(t *testing.T) {
	dir := memdir.New()
	dir.Register(identity.User{ID: "carol-1", Email: "carol@example.com"})
	ts := newTestServer(t, dir)

	owner := debugUser{ID: "owner-1", Email: "ana@example.com"}
	carol := debugUser{ID: "carol-1", Email: "carol@example.com"}

	babyID := createBaby(t, ts.URL, owner, map[string]any{"name": "Max"})

	st, body := doReq(t, ts.URL, "POST", "/babies/"+babyID+"/invitations", owner, map[string]any{
		"email": "carol@example.com",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 invite, got %d body=%s", st, string(body))
	}
	var resp struct {
		GrantedDirectly bool `json:"granted_directly"`
		Grant           *struct {
			UserID string `json:"user_id"`
			Role   string `json:"role"`
		} `json:"grant"`
		Token string `json:"token"`
	}
	_ = json.Unmarshal(body, &resp)
	if !resp.GrantedDirectly || resp.Grant == nil {
		t.Fatalf("expected direct grant body=%s", string(body))
	}
	if resp.Grant.UserID != "carol-1" || resp.Grant.Role != "caregiver" {
		t.Fatalf("unexpected grant body=%s", string(body))
	}
	if resp.Token != "" {
		t.Fatalf("direct grant must not mint a token body=%s", string(body))
	}

	// Carol accede sin tocar ningún link
	{
		st, body := doReq(t, ts.URL, "GET", "/babies/"+babyID, carol, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get baby by carol, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/me/grants", carol, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 my grants, got %d body=%s", st, string(body))
		}
		var grants []struct {
			BabyID string `json:"baby_id"`
		}
		_ = json.Unmarshal(body, &grants)
		if len(grants) != 1 || grants[0].BabyID != babyID {
			t.Fatalf("expected carol's grant listed body=%s", string(body))
		}
	}

	// Repetir la invitación => 409, ya tiene acceso
	{
		st, _ := doReq(t, ts.URL, "POST", "/babies/"+babyID+"/invitations", owner, map[string]any{
			"email": "carol@example.com",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 re-invite, got %d", st)
		}
	}
}

func TestHTTP_CancelledToken_IsGone(t *testing.T) {
	ts := newTestServer(t, memdir.New())

	owner := debugUser{ID: "owner-1", Email: "ana@example.com"}
	babyID := createBaby(t, ts.URL, owner, map[string]any{"name": "Luna"})

	st, body := doReq(t, ts.URL, "POST", "/babies/"+babyID+"/invitations", owner, map[string]any{
		"email": "bob@example.com",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 invite, got %d body=%s", st, string(body))
	}
	var invited struct {
		Token      string `json:"token"`
		Invitation struct {
			ID string `json:"id"`
		} `json:"invitation"`
	}
	_ = json.Unmarshal(body, &invited)

	// Solo el owner puede cancelar
	{
		st, _ := doReq(t, ts.URL, "POST", "/invitations/"+invited.Invitation.ID+"/cancel", debugUser{ID: "stranger"}, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 cancel by stranger, got %d", st)
		}
	}

	{
		st, body := doReq(t, ts.URL, "POST", "/invitations/"+invited.Invitation.ID+"/cancel", owner, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 cancel, got %d body=%s", st, string(body))
		}
	}

	// El link muere con la invitación
	{
		st, body := doReq(t, ts.URL, "GET", "/invitations/token/"+invited.Token, debugUser{}, nil)
		if st != http.StatusGone {
			t.Fatalf("expected 410 cancelled token, got %d body=%s", st, string(body))
		}
		var resp struct {
			Reason string `json:"reason"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Reason != "cancelled" {
			t.Fatalf("expected cancelled, got %q", resp.Reason)
		}
	}
}

func TestHTTP_Invite_RequiresOwner(t *testing.T) {
	ts := newTestServer(t, memdir.New())

	owner := debugUser{ID: "owner-1", Email: "ana@example.com"}
	babyID := createBaby(t, ts.URL, owner, map[string]any{"name": "Luna"})

	// Sin sesión => 401
	{
		st, _ := doReq(t, ts.URL, "POST", "/babies/"+babyID+"/invitations", debugUser{}, map[string]any{
			"email": "x@example.com",
		})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without session, got %d", st)
		}
	}

	// Extraño => 403
	{
		st, _ := doReq(t, ts.URL, "POST", "/babies/"+babyID+"/invitations", debugUser{ID: "stranger"}, map[string]any{
			"email": "x@example.com",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 invite by stranger, got %d", st)
		}
	}

	// Email inválido => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/babies/"+babyID+"/invitations", owner, map[string]any{
			"email": "no-es-un-email",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 bad email, got %d", st)
		}
	}
}

type debugUser struct {
	ID    string
	Email string
}

func createBaby(t *testing.T, baseURL string, u debugUser, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/babies", u, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create baby, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create baby: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path string, u debugUser, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if u.ID != "" {
		req.Header.Set("X-Debug-User-ID", u.ID)
		req.Header.Set("X-Debug-Email", u.Email)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
