package requestresponse

import "pethelp-client/internal/model"

// FeedResponse : страница ленты объявлений
type FeedResponse struct {
	Response struct {
		Posts []model.Post `json:"posts"`
		Page  int          `json:"page"`
	} `json:"response"`
}

// MapPointsResponse : точки для слоя карты
type MapPointsResponse struct {
	Response struct {
		Points []model.MapPoint `json:"points"`
	} `json:"response"`
}

// DonationsResponse : список пожертвований по объявлению
type DonationsResponse struct {
	Response struct {
		Donations []model.Donation `json:"donations"`
	} `json:"response"`
}

// ProfileResponse : информация о текущем пользователе
type ProfileResponse struct {
	Response model.Profile `json:"response"`
}

// CreatePostRequest : тело запроса на создание объявления
type CreatePostRequest struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	City        string `json:"city,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

// CreatePostResponse : ответ на создание объявления
type CreatePostResponse struct {
	Response struct {
		UUID string `json:"uuid"`
	} `json:"response"`
}

// UploadResponse : ответ на загрузку файла
type UploadResponse struct {
	Response struct {
		URL string `json:"url"`
	} `json:"response"`
}
