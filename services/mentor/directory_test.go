package mentor

import (
	"context"
	"testing"

	mentorRepo "globaled/database/repository/mentor"
	"globaled/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mentorFixture(id int, name, university, major, region string) models.Mentor {
	return models.Mentor{
		BaseUser:   models.BaseUser{ID: id, Name: name},
		University: university,
		Major:      major,
		Region:     region,
	}
}

var catalog = []models.Mentor{
	mentorFixture(1, "Zhang Wei", "Stanford University", "Computer Science", "USA"),
	mentorFixture(2, "Li Na", "London School of Economics", "Finance", "UK"),
	mentorFixture(3, "Wang Fang", "University of Toronto", "Data Science", "Canada"),
	mentorFixture(6, "Alex Chen", "Carnegie Mellon University", "Machine Learning", "USA"),
}

func ids(mentors []models.Mentor) []int {
	out := []int{}
	for _, m := range mentors {
		out = append(out, m.ID)
	}
	return out
}

func TestFilterMentorsEmptyFilterExcludesCurrentUser(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, ids(FilterMentors(catalog, Filter{}, 6)))
	assert.Equal(t, []int{1, 2, 3, 6}, ids(FilterMentors(catalog, Filter{}, 21)))
}

func TestFilterMentorsByRegion(t *testing.T) {
	twoRegions := []models.Mentor{catalog[0], catalog[1]}
	assert.Equal(t, []int{2}, ids(FilterMentors(twoRegions, Filter{Region: "UK"}, 0)))
	assert.Equal(t, []int{1, 6}, ids(FilterMentors(catalog, Filter{Region: "USA"}, 0)))
}

func TestFilterMentorsByMajorIsExact(t *testing.T) {
	assert.Equal(t, []int{3}, ids(FilterMentors(catalog, Filter{Major: "Data Science"}, 0)))
	assert.Empty(t, FilterMentors(catalog, Filter{Major: "Science"}, 0))
}

func TestFilterMentorsSearch(t *testing.T) {
	tests := map[string][]int{
		"zhang":   {1},
		"TORONTO": {3},
		"univ":    {1, 3, 6},
		"  lse ":  {},
		"nobody":  {},
	}
	for search, want := range tests {
		t.Run(search, func(t *testing.T) {
			assert.Equal(t, want, ids(FilterMentors(catalog, Filter{Search: search}, 0)))
		})
	}
}

func TestFilterMentorsCombined(t *testing.T) {
	got := FilterMentors(catalog, Filter{Region: "USA", Search: "carnegie"}, 0)
	assert.Equal(t, []int{6}, ids(got))
}

func TestBuildFacets(t *testing.T) {
	facets := BuildFacets(catalog, 6)
	assert.Equal(t, []string{"USA", "UK", "Canada"}, facets.Regions)
	assert.Equal(t, []string{"Computer Science", "Finance", "Data Science"}, facets.Majors)
}

func TestServiceReviewsForUnknownMentor(t *testing.T) {
	svc := &DefaultMentorService{Repo: mentorRepo.NewMemoryMentorRepo(catalog, map[int][]models.Review{
		1: {{ID: 1, ReviewerName: "Sophia", Rating: 5}},
	})}
	ctx := context.Background()

	reviews, err := svc.GetReviews(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	reviews, err = svc.GetReviews(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	_, err = svc.GetReviews(ctx, 999)
	assert.ErrorIs(t, err, mentorRepo.ErrMentorNotFound)
}
