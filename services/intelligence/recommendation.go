package ai

import (
	"encoding/json"
	"math"
	"strings"

	"globaled/models"
)

type structuredReply struct {
	Response            string   `json:"response"`
	RecommendedMentorID *float64 `json:"recommendedMentorId"`
}

// parseStructuredReply extracts the reply text and recommended mentor id from a
// structured response. Text that is not a JSON object is returned verbatim with id 0.
func parseStructuredReply(raw string) (string, int) {
	body := stripCodeFence(raw)
	var reply structuredReply
	if err := json.Unmarshal([]byte(body), &reply); err != nil || reply.Response == "" {
		return raw, 0
	}
	id := 0
	if f := reply.RecommendedMentorID; f != nil && *f == math.Trunc(*f) && *f > 0 && *f <= math.MaxInt32 {
		id = int(*f)
	}
	return reply.Response, id
}

func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// findMentor returns the catalog entry with the id, or nil for 0 and unknown ids.
func findMentor(catalog []models.Mentor, id int) *models.Mentor {
	if id <= 0 {
		return nil
	}
	for i := range catalog {
		if catalog[i].ID == id {
			m := catalog[i]
			return &m
		}
	}
	return nil
}
