package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"clubhub/internal/domain"
)

func TestMemberRefOrDefault(t *testing.T) {
	t.Run("Existing member", func(t *testing.T) {
		id := uuid.New()
		firstName := "Grace"
		lastName := "Hopper"
		avatarURL := "https://cdn.example.com/grace.png"

		ref := memberRefOrDefault(&id, &firstName, &lastName, &avatarURL, domain.UnknownAuthor())

		assert.Equal(t, id, ref.ID)
		assert.Equal(t, "Grace", ref.FirstName)
		assert.Equal(t, "Hopper", ref.LastName)
		assert.Equal(t, &avatarURL, ref.AvatarURL)
	})

	t.Run("Deleted comment author gets the placeholder", func(t *testing.T) {
		ref := memberRefOrDefault(nil, nil, nil, nil, domain.UnknownAuthor())
		assert.Equal(t, domain.UnknownAuthor(), ref)
		assert.Equal(t, uuid.Nil, ref.ID)
	})

	t.Run("Deleted participant gets the placeholder", func(t *testing.T) {
		ref := memberRefOrDefault(nil, nil, nil, nil, domain.UnknownUser())
		assert.Equal(t, domain.UnknownUser(), ref)
	})
}
