package webhook

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"github.com/avolkhin/shopbot/internal/telegram"
)

type recordingDispatcher struct {
	updates []*telegram.Update
}

func (d *recordingDispatcher) Dispatch(u *telegram.Update) {
	d.updates = append(d.updates, u)
}

type WebhookTestSuite struct {
	suite.Suite
	dispatcher *recordingDispatcher
	router     *gin.Engine
}

func TestWebhookSuite(t *testing.T) {
	suite.Run(t, new(WebhookTestSuite))
}

func (s *WebhookTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.dispatcher = &recordingDispatcher{}
	s.router = New(RouterArgs{
		Secret:     "s3cret",
		Dispatcher: s.dispatcher,
		Registry:   prometheus.NewRegistry(),
	})
}

func (s *WebhookTestSuite) postUpdate(secret string, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/"+secret, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	return w
}

func (s *WebhookTestSuite) TestHandleDispatchesUpdate() {
	w := s.postUpdate("s3cret", `{"user_id":100,"message":{"id":1,"text":"привет"}}`)

	s.Equal(http.StatusOK, w.Code)
	s.Require().Len(s.dispatcher.updates, 1)
	upd := s.dispatcher.updates[0]
	s.Equal(int64(100), upd.UserID)
	// chat_id по умолчанию равен user_id
	s.Equal(int64(100), upd.ChatID)
	s.Require().NotNil(upd.Message)
	s.Equal("привет", upd.Message.Text)
}

func (s *WebhookTestSuite) TestHandleRejectsBadRequests() {
	cases := []struct {
		name     string
		secret   string
		body     string
		wantCode int
	}{
		{name: "wrong secret", secret: "wrong", body: `{"user_id":100}`, wantCode: http.StatusNotFound},
		{name: "malformed body", secret: "s3cret", body: `{not json`, wantCode: http.StatusBadRequest},
		{name: "missing user id", secret: "s3cret", body: `{"chat_id":5,"message":{"id":1,"text":"hi"}}`, wantCode: http.StatusBadRequest},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			w := s.postUpdate(tc.secret, tc.body)
			s.Equal(tc.wantCode, w.Code)
			s.Empty(s.dispatcher.updates)
		})
	}
}

func (s *WebhookTestSuite) TestHealthRoute() {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	s.Equal(http.StatusOK, w.Code)
}
