package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"globaled/database"
	chatRepo "globaled/database/repository/chat"
	mentorRepo "globaled/database/repository/mentor"
	planRepo "globaled/database/repository/plan"
	postRepo "globaled/database/repository/post"
	userRepo "globaled/database/repository/user"
	"globaled/handlers"
	"globaled/models"
	"globaled/services/chat"
	"globaled/services/community"
	ai "globaled/services/intelligence"
	"globaled/services/mentor"
	"globaled/services/payment"
	"globaled/services/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type scriptedGenerator struct {
	reply  string
	chunks []string
}

func (g *scriptedGenerator) Generate(ctx context.Context, req ai.GenerateRequest) (string, error) {
	return g.reply, nil
}

func (g *scriptedGenerator) GenerateStream(ctx context.Context, req ai.GenerateRequest, onChunk func(string) error) error {
	for _, c := range g.chunks {
		if err := onChunk(c); err != nil {
			return err
		}
	}
	return nil
}

func newTestRouter(t *testing.T, generator ai.Generator) *gin.Engine {
	t.Helper()
	fixtures := database.LoadFixtures()
	logger := zap.NewNop()

	mentors := mentorRepo.NewMemoryMentorRepo(fixtures.Mentors, fixtures.Reviews)
	users := userRepo.NewMemoryUserRepo(fixtures.Students, fixtures.Mentors)
	manager := session.NewManager(users, database.DemoStudentID, database.DemoMentorID, "en")
	mentorService := &mentor.DefaultMentorService{Repo: mentors}

	aiService := ai.NewDefaultAIService(generator, ai.NewMemoryConversationStore(), mentorService, logger, time.Second)
	require.NoError(t, aiService.Seed(context.Background(), database.DemoStudentID, fixtures.Conversations))

	hb := &handlers.HandlerBundle{
		Session:   handlers.NewSessionHandler(manager),
		Mentor:    handlers.NewMentorHandler(mentorService),
		Payment:   handlers.NewPaymentHandler(payment.NewPaymentService(logger, planRepo.NewMemoryPlanRepo(fixtures.Plans), users)),
		AI:        handlers.NewAIHandler(aiService),
		Community: handlers.NewCommunityHandler(community.NewCommunityService(postRepo.NewMemoryPostRepo(fixtures.StudentPosts, fixtures.MentorPosts))),
		Chat:      handlers.NewChatHandler(chat.NewChatService(logger, chatRepo.NewMemoryChatRepo(fixtures.Chats), users)),
	}
	r := gin.New()
	RegisterRoutes(r, hb, manager)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

const planPath = "/api/payments/plans/" + database.DemoPlanID

func TestHealth(t *testing.T) {
	r := newTestRouter(t, nil)
	w := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestMentorDirectory(t *testing.T) {
	r := newTestRouter(t, nil)

	type listResponse struct {
		Mentors []struct {
			ID   int         `json:"id"`
			Role models.Role `json:"role"`
		} `json:"mentors"`
	}

	all := decode[listResponse](t, do(t, r, http.MethodGet, "/api/mentors", nil))
	assert.Len(t, all.Mentors, 6)
	assert.Equal(t, models.RoleMentor, all.Mentors[0].Role)

	usa := decode[listResponse](t, do(t, r, http.MethodGet, "/api/mentors?region=USA", nil))
	ids := []int{}
	for _, m := range usa.Mentors {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int{1, database.DemoMentorID}, ids)

	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/api/session/switch-role", nil).Code)
	asMentor := decode[listResponse](t, do(t, r, http.MethodGet, "/api/mentors", nil))
	assert.Len(t, asMentor.Mentors, 5)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/mentors/999", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/mentors/abc", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/mentors/1/reviews", nil).Code)
}

func TestMilestoneReleaseFlow(t *testing.T) {
	r := newTestRouter(t, nil)
	release := func(id string) *httptest.ResponseRecorder {
		return do(t, r, http.MethodPost, planPath+"/milestones/"+id+"/release", map[string]int{"methodIndex": 0})
	}

	w := release("1")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please add a payment method first.")

	w = do(t, r, http.MethodPost, "/api/payments/methods/alipay", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"type":"alipay"`)

	w = release("1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[payment.ReleaseResult](t, w)
	assert.Equal(t, models.MilestoneCompleted, res.Plan.Milestones[0].Status)
	assert.Equal(t, models.MilestonePending, res.Plan.Milestones[1].Status)
	assert.Equal(t, models.MilestoneLocked, res.Plan.Milestones[2].Status)
	assert.Equal(t, "Alipay", res.Receipt.Method)

	assert.Equal(t, http.StatusConflict, release("1").Code)
	assert.Equal(t, http.StatusConflict, release("3").Code)
	assert.Equal(t, http.StatusNotFound, release("9").Code)

	w = do(t, r, http.MethodGet, planPath+"/milestones/2/qr", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
	assert.Equal(t, http.StatusConflict, do(t, r, http.MethodGet, planPath+"/milestones/1/qr", nil).Code)
}

func TestMentorCannotRelease(t *testing.T) {
	r := newTestRouter(t, nil)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/api/session/switch-role", nil).Code)

	w := do(t, r, http.MethodPost, planPath+"/milestones/1/release", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodGet, "/api/payments/methods", nil).Code)
}

func TestAddCard(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/api/payments/methods/card", map[string]string{"cardNumber": "5500-0000-0000-0004"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"last4":"0004"`)
	assert.Contains(t, w.Body.String(), `"brand":"mastercard"`)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/payments/methods/card", map[string]string{}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/payments/methods/card", map[string]string{"cardNumber": "    "}).Code)

	w = do(t, r, http.MethodGet, "/api/payments/methods", nil)
	assert.Contains(t, w.Body.String(), `"type":"credit_card"`)
}

func TestAssistantWithoutCredential(t *testing.T) {
	r := newTestRouter(t, nil)

	list := decode[struct {
		Conversations []models.ConversationSummary `json:"conversations"`
		Configured    bool                         `json:"configured"`
	}](t, do(t, r, http.MethodGet, "/api/ai/conversations", nil))
	require.Len(t, list.Conversations, 2)
	assert.Equal(t, "UK vs. Canada for Data Science", list.Conversations[0].Title)
	assert.False(t, list.Configured)

	w := do(t, r, http.MethodPost, "/api/ai/conversations/1/messages", map[string]string{"text": "Hello"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), ai.ConfigErrorMessage)

	conv := decode[models.Conversation](t, do(t, r, http.MethodGet, "/api/ai/conversations/1", nil))
	assert.Len(t, conv.Messages, 2)
}

func TestAssistantRecommendsMentor(t *testing.T) {
	r := newTestRouter(t, &scriptedGenerator{reply: `{"response":"Wang Fang can help.","recommendedMentorId":3}`})

	w := do(t, r, http.MethodPost, "/api/ai/conversations", map[string]string{"lang": "en"})
	require.Equal(t, http.StatusCreated, w.Code)
	conv := decode[models.Conversation](t, w)

	w = do(t, r, http.MethodPost, "/api/ai/conversations/"+conv.ID+"/messages", map[string]string{"text": "Data science in Canada"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var reply struct {
		Reply struct {
			Text                 string `json:"text"`
			MentorRecommendation *struct {
				ID int `json:"id"`
			} `json:"mentorRecommendation"`
		} `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, "Wang Fang can help.", reply.Reply.Text)
	require.NotNil(t, reply.Reply.MentorRecommendation)
	assert.Equal(t, 3, reply.Reply.MentorRecommendation.ID)

	w = do(t, r, http.MethodPost, "/api/ai/conversations/"+conv.ID+"/analysis", map[string]string{"text": "no such message", "type": "grammar"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodPost, "/api/ai/conversations/"+conv.ID+"/analysis", map[string]string{"text": "Data science in Canada", "type": "tone"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/ai/conversations/missing", nil).Code)
}

func TestAssistantStreamsOverWebsocket(t *testing.T) {
	r := newTestRouter(t, &scriptedGenerator{chunks: []string{"Great ", "question!"}})
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ai/conversations/2/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"text": "Help me with my SOP"}))

	var events []ai.StreamEvent
	for {
		var ev ai.StreamEvent
		require.NoError(t, conn.ReadJSON(&ev))
		events = append(events, ev)
		if ev.Type != ai.StreamChunk {
			break
		}
	}
	require.Len(t, events, 3)
	assert.Equal(t, "Great ", events[0].Text)
	assert.Equal(t, ai.StreamDone, events[2].Type)
	assert.Equal(t, "Great question!", events[2].Text)
}

func TestCommunityAndChat(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/api/community/posts", map[string]string{"content": "Looking for an LSE mentor"})
	require.Equal(t, http.StatusCreated, w.Code)
	post := decode[models.Post](t, w)
	assert.Equal(t, "Not specified", post.Target)

	board := decode[struct {
		Posts []models.Post `json:"posts"`
	}](t, do(t, r, http.MethodGet, "/api/community/posts?board=students", nil))
	assert.Equal(t, post.ID, board.Posts[0].ID)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/community/posts", map[string]string{"content": " "}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/community/posts?board=alumni", nil).Code)

	w = do(t, r, http.MethodPost, "/api/chats/1", map[string]string{"text": "Did you get my draft?"})
	require.Equal(t, http.StatusCreated, w.Code)
	history := decode[struct {
		Messages []models.ChatMessage `json:"messages"`
	}](t, do(t, r, http.MethodGet, "/api/chats/1", nil))
	assert.Equal(t, "Did you get my draft?", history.Messages[len(history.Messages)-1].Text)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/chats/404", nil).Code)
}

func TestSessionLanguage(t *testing.T) {
	r := newTestRouter(t, nil)
	w := do(t, r, http.MethodPut, "/api/session/lang", map[string]string{"lang": "zh"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"lang":"zh"`)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPut, "/api/session/lang", map[string]string{"lang": "de"}).Code)
}
