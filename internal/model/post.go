package model

import "time"

// Post : объявление в ленте потерянных и найденных питомцев
type Post struct {
	UUID        string    `json:"uuid"`
	Kind        string    `json:"kind"` // lost | found
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	City        string    `json:"city,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Mine и Saved заполняются только в авторизованном варианте ленты
	Mine  bool `json:"mine,omitempty"`
	Saved bool `json:"saved,omitempty"`
}

// MapPoint : точка на карте приютов, ветеринаров и партнеров
type MapPoint struct {
	UUID     string  `json:"uuid"`
	Category string  `json:"category"` // shelter | vet | partner
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// Donation : пожертвование в списке сборов
type Donation struct {
	UUID      string    `json:"uuid"`
	PostUUID  string    `json:"post_uuid"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

type Profile struct {
	UUID      string `json:"uuid"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
