package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamatos3/roamer-api/utils"
)

func validPost() Post {
	return Post{
		Title:    "Cafe",
		Location: "NYC",
		Content:  "Great",
		Rating:   5,
		OwnerID:  1,
	}
}

func TestPostValidateAccepts(t *testing.T) {
	for rating := RatingMin; rating <= RatingMax; rating++ {
		p := validPost()
		p.Rating = rating
		assert.NoError(t, p.Validate())
	}
}

func TestPostValidateRatingBounds(t *testing.T) {
	for _, rating := range []int{-1, 6, 100} {
		p := validPost()
		p.Rating = rating

		err := p.Validate()
		var apiErr *utils.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 422, apiErr.Status)
		assert.Contains(t, apiErr.Fields, "rating")
	}
}

func TestPostValidateRequiredFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*Post)
	}{
		{"title", func(p *Post) { p.Title = "" }},
		{"location", func(p *Post) { p.Location = "   " }},
		{"content", func(p *Post) { p.Content = "" }},
		{"owner", func(p *Post) { p.OwnerID = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			p := validPost()
			tc.mutate(&p)

			err := p.Validate()
			var apiErr *utils.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Contains(t, apiErr.Fields, tc.field)
		})
	}
}

func TestUserValidate(t *testing.T) {
	u := User{Email: "a@b.c", PasswordHash: "x"}
	assert.NoError(t, u.Validate())

	u = User{}
	err := u.Validate()
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Fields, "email")
	assert.Contains(t, apiErr.Fields, "password")
}

func TestUserPublicHidesCredential(t *testing.T) {
	u := User{ID: 3, Email: "a@b.c", PasswordHash: "secret", SessionToken: "tok"}

	public := u.Public()

	assert.Equal(t, uint(3), public["id"])
	assert.Equal(t, "a@b.c", public["email"])
	for key := range public {
		assert.NotContains(t, []string{"password_hash", "session_token"}, key)
	}
}
