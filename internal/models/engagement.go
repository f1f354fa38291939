package models

import "encoding/json"

// Like represents a user's like on a post.
// The combination of UserID and PostID must be unique.
type Like struct {
	ID     uint `json:"id"`
	PostID uint `json:"post_id"`
	UserID uint `json:"user_id"`
}

// Favorite represents a user's favorite on a post. The canonical
// identifier is the favorite record id; some backend responses name it
// favorite_id, which is accepted as an alias on decode.
type Favorite struct {
	ID     uint `json:"id"`
	PostID uint `json:"post_id"`
	UserID uint `json:"user_id"`
}

// UnmarshalJSON decodes a favorite, preferring "id" and falling back to
// the legacy "favorite_id" alias.
func (f *Favorite) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         uint `json:"id"`
		FavoriteID uint `json:"favorite_id"`
		PostID     uint `json:"post_id"`
		UserID     uint `json:"user_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.ID = raw.ID
	if f.ID == 0 {
		f.ID = raw.FavoriteID
	}
	f.PostID = raw.PostID
	f.UserID = raw.UserID
	return nil
}
