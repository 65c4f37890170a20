package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/lgbarn/cgtcase/internal/output"
	"github.com/lgbarn/cgtcase/internal/testutil"
)

func newTestServer(t *testing.T) (*httptest.Server, *syncBuffer) {
	t.Helper()
	log := &syncBuffer{}
	srv := httptest.NewServer(NewServer(testutil.NewRegistry(), testutil.QuietConfig(), log))
	t.Cleanup(srv.Close)
	return srv, log
}

func postParse(t *testing.T, srv *httptest.Server, body string) (int, ParseResponse) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/parse", "text/plain", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /parse: %v", err)
	}
	defer resp.Body.Close()

	var pr ParseResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, pr
}

func TestServer_Parse(t *testing.T) {
	srv, log := newTestServer(t)

	status, pr := postParse(t, srv, "{version 1.1}\n[nim] (1 2) /#1 second/ {B win, W}")
	testutil.AssertEqual(t, status, http.StatusOK)
	testutil.AssertEqual(t, pr.Error, "")
	if len(pr.Cases) != 2 {
		t.Fatalf("got %d cases; want 2", len(pr.Cases))
	}
	testutil.AssertEqual(t, pr.Cases[0].Command, "B win")
	testutil.AssertEqual(t, pr.Cases[1].Comments, "second")
	testutil.AssertEqual(t, pr.Cases[1].Games, []output.JSONGame{{Family: "nim", Value: "1 2"}})
	testutil.AssertContains(t, log.String(), "POST /parse")
}

func TestServer_ParseError(t *testing.T) {
	srv, _ := newTestServer(t)

	status, pr := postParse(t, srv, "[nim] 1 {B} (5)")
	testutil.AssertEqual(t, status, http.StatusUnprocessableEntity)
	testutil.AssertEqual(t, len(pr.Cases), 1)
	testutil.AssertEqual(t, pr.ErrorClass, "structural")
	testutil.AssertContains(t, pr.Error, "section title missing")
}

func TestServer_ParseVersion(t *testing.T) {
	srv, _ := newTestServer(t)

	status, pr := postParse(t, srv, "{version 0.9} [nim] 1 {B}")
	testutil.AssertEqual(t, status, http.StatusOK)
	testutil.AssertEqual(t, pr.WarnedVersion, true)
}

func TestServer_Families(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/families")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got map[string][]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, got["families"], testutil.NewRegistry().Families())
}

func TestServer_NotFoundAndMethod(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusNotFound)

	resp, err = http.Get(srv.URL + "/parse")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusMethodNotAllowed)
}

func TestServer_Websocket(t *testing.T) {
	srv, _ := newTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	defer conn.Close()

	send := func(text string) ([]output.JSONCase, StatusMessage) {
		t.Helper()
		if err := conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
			t.Fatal(err)
		}
		var cases []output.JSONCase
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				t.Fatal(err)
			}
			var status StatusMessage
			if err := json.Unmarshal(msg, &status); err == nil && status.Done {
				return cases, status
			}
			var jc output.JSONCase
			if err := json.Unmarshal(msg, &jc); err != nil {
				t.Fatalf("bad message %s: %v", msg, err)
			}
			cases = append(cases, jc)
		}
	}

	cases, status := send("[up_star] (1 *) {B, W, N}")
	testutil.AssertEqual(t, len(cases), 3)
	testutil.AssertEqual(t, status.Cases, 3)
	testutil.AssertEqual(t, status.Error, "")
	testutil.AssertEqual(t, cases[2].Player, "N")

	// The connection survives a failed parse.
	cases, status = send("[nim] 1 {}")
	testutil.AssertEqual(t, len(cases), 0)
	testutil.AssertEqual(t, status.ErrorClass, "structural")
	testutil.AssertContains(t, status.Error, "empty command")
}
