package gallery

import "gorm.io/gorm"

// Viewer is the requesting identity evaluated by the visibility engine.
// Anonymous viewers are the zero value.
type Viewer struct {
	Authenticated bool
	UserID        int64
	ProfileID     int64
	CanViewAdult  bool
}

// Anonymous is the viewer used for unauthenticated requests.
var Anonymous = Viewer{}

// CanView decides per-photo access for the detail view. Expects
// photo.Category and photo.AllowedFriends to be loaded.
//
// The adult gate is evaluated first and applies to everyone, including the
// photo's owner. That differs from listings, where owners always see their own
// photos: a deliberate policy split, see VisibleScope.
func CanView(v Viewer, photo *Photo) bool {
	if photo.Category != nil && photo.Category.IsAdultOnly && !v.CanViewAdult {
		return false
	}

	allowed := photo.Visibility == VisibilityPublic
	if v.Authenticated {
		switch {
		case photo.OwnerID == v.UserID:
			allowed = true
		case photo.Visibility == VisibilityAuthenticated:
			allowed = true
		case photo.Visibility == VisibilityFriends && isAllowedFriend(v.ProfileID, photo.AllowedFriends):
			allowed = true
		}
	}
	return allowed
}

func isAllowedFriend(profileID int64, allowed []PhotoFriend) bool {
	for _, pf := range allowed {
		if pf.ProfileID == profileID {
			return true
		}
	}
	return false
}

// adultSafeCond excludes photos whose category is adult-only.
const adultSafeCond = "(photos.category_id IS NULL OR photos.category_id NOT IN " +
	"(SELECT id FROM categories WHERE is_adult_only))"

const allowedFriendCond = "photos.id IN (SELECT photo_id FROM photo_friends WHERE profile_id = ?)"

// VisibleScope builds the single listing predicate combining the visibility
// branches with the adult-content exclusion. It evaluates in one query with no
// per-photo checks, and a photo matching several branches still appears once.
//
// The owner branch is not adult-filtered: in aggregate listings users always
// see their own photos even when the detail view's adult gate would refuse
// them. Kept as an explicit policy branch rather than silently unified with
// CanView.
func VisibleScope(v Viewer) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !v.Authenticated {
			return db.Where("photos.visibility = ? AND "+adultSafeCond, VisibilityPublic)
		}

		if v.CanViewAdult {
			return db.Where(
				"photos.visibility IN (?, ?) OR (photos.visibility = ? AND "+allowedFriendCond+") OR photos.owner_id = ?",
				VisibilityPublic, VisibilityAuthenticated,
				VisibilityFriends, v.ProfileID,
				v.UserID,
			)
		}

		return db.Where(
			"(photos.visibility IN (?, ?) AND "+adultSafeCond+") OR (photos.visibility = ? AND "+allowedFriendCond+" AND "+adultSafeCond+") OR photos.owner_id = ?",
			VisibilityPublic, VisibilityAuthenticated,
			VisibilityFriends, v.ProfileID,
			v.UserID,
		)
	}
}
