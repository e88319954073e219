package university

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeClient struct {
	lastPrompt string
	reply      string
	fail       bool
}

func (f *fakeClient) Complete(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.fail {
		return "", fmt.Errorf("backend unavailable")
	}
	return f.reply, nil
}

func (f *fakeClient) Health() error    { return nil }
func (f *fakeClient) Provider() string { return "test" }

func TestSearchCoursesMannheimFallback(t *testing.T) {
	r := NewRecommender(nil, testLogger())

	out := r.SearchCourses(context.Background(), "University of Mannheim", "Data Science")
	assert.Contains(t, out, "Data Science Courses at University of Mannheim")

	out = r.SearchCourses(context.Background(), "University of Mannheim", "")
	assert.Contains(t, out, "Recommended Courses at University of Mannheim")
}

func TestSearchCoursesGenericFallback(t *testing.T) {
	r := NewRecommender(nil, testLogger())

	out := r.SearchCourses(context.Background(), "MIT", "physics")
	assert.Contains(t, out, "Recommended Courses at MIT")
	assert.Contains(t, out, "in physics")
}

func TestInfoFallback(t *testing.T) {
	r := NewRecommender(nil, testLogger())

	assert.Contains(t, r.Info(context.Background(), "University of Mannheim"), "Mannheim Palace")
	assert.Contains(t, r.Info(context.Background(), "ETH Zurich"), "ETH Zurich")
}

func TestRecommendFallback(t *testing.T) {
	r := NewRecommender(nil, testLogger())

	out := r.Recommend(context.Background(), "University of Mannheim", "data science", "graduate", "machine learning")
	assert.Contains(t, out, "Graduate")
	assert.Contains(t, out, "M.Sc. in Data Science")

	out = r.Recommend(context.Background(), "University of Mannheim", "", "", "")
	assert.Contains(t, out, "Undergraduate")
	assert.Contains(t, out, "Business Administration")
}

func TestLivePathBuildsDetailedQuery(t *testing.T) {
	client := &fakeClient{reply: "live answer"}
	r := NewRecommender(client, testLogger())

	out := r.Recommend(context.Background(), "TU Munich", "robotics", "graduate", "automation")
	assert.Equal(t, "live answer", out)
	assert.Contains(t, client.lastPrompt, "Recommend graduate courses at TU Munich")
	assert.Contains(t, client.lastPrompt, "interested in robotics")
	assert.Contains(t, client.lastPrompt, "career in automation")
}

func TestLivePathErrorFallsBack(t *testing.T) {
	r := NewRecommender(&fakeClient{fail: true}, testLogger())
	out := r.Info(context.Background(), "Somewhere State")
	assert.Contains(t, out, "Somewhere State")
}
