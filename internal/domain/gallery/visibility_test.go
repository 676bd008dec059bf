package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func adultCategory() *Category {
	return &Category{ID: 7, Name: "Boudoir", Slug: "boudoir", IsAdultOnly: true}
}

func TestCanView_PublicPhoto(t *testing.T) {
	photo := &Photo{OwnerID: 1, Visibility: VisibilityPublic}

	assert.True(t, CanView(Anonymous, photo))
	assert.True(t, CanView(Viewer{Authenticated: true, UserID: 2}, photo))
}

func TestCanView_AuthenticatedPhoto(t *testing.T) {
	photo := &Photo{OwnerID: 1, Visibility: VisibilityAuthenticated}

	assert.False(t, CanView(Anonymous, photo))
	assert.True(t, CanView(Viewer{Authenticated: true, UserID: 2}, photo))
}

func TestCanView_FriendsPhoto(t *testing.T) {
	photo := &Photo{
		OwnerID:        1,
		Visibility:     VisibilityFriends,
		AllowedFriends: []PhotoFriend{{ProfileID: 20}},
	}

	assert.False(t, CanView(Anonymous, photo))
	assert.False(t, CanView(Viewer{Authenticated: true, UserID: 3, ProfileID: 30}, photo))
	assert.True(t, CanView(Viewer{Authenticated: true, UserID: 2, ProfileID: 20}, photo),
		"member of allowed_friends")
	assert.True(t, CanView(Viewer{Authenticated: true, UserID: 1, ProfileID: 10}, photo),
		"owner always passes visibility")
}

func TestCanView_AdultGateBeforeVisibility(t *testing.T) {
	catID := int64(7)
	photo := &Photo{
		OwnerID:    1,
		Visibility: VisibilityPublic,
		CategoryID: &catID,
		Category:   adultCategory(),
	}

	assert.False(t, CanView(Anonymous, photo), "anonymous never sees adult content")
	assert.False(t, CanView(Viewer{Authenticated: true, UserID: 2}, photo))
	assert.True(t, CanView(Viewer{Authenticated: true, UserID: 2, CanViewAdult: true}, photo))
}

func TestCanView_AdultGateAppliesToOwner(t *testing.T) {
	catID := int64(7)
	photo := &Photo{
		OwnerID:    1,
		Visibility: VisibilityPublic,
		CategoryID: &catID,
		Category:   adultCategory(),
	}

	owner := Viewer{Authenticated: true, UserID: 1, ProfileID: 10}
	assert.False(t, CanView(owner, photo), "detail view gates the owner too")

	owner.CanViewAdult = true
	assert.True(t, CanView(owner, photo))
}

func TestVisibility_Valid(t *testing.T) {
	assert.True(t, VisibilityPublic.Valid())
	assert.True(t, VisibilityAuthenticated.Valid())
	assert.True(t, VisibilityFriends.Valid())
	assert.False(t, Visibility("secret").Valid())
}
