package dto

// ItemResp is the stable API shape of a cached item.
type ItemResp struct {
	ItemID     string   `json:"item_id"`
	Name       string   `json:"name"`
	Rating     float64  `json:"rating"`
	Address    string   `json:"address"`
	Categories []string `json:"categories"`
	ImageURL   string   `json:"image_url"`
	URL        string   `json:"url"`
	Distance   float64  `json:"distance"`
	Favorite   bool     `json:"favorite,omitempty"`
}

type FavoriteReq struct {
	UserID   string   `json:"user_id" validate:"required,max=64"`
	Favorite []string `json:"favorite" validate:"required,max=200"`
}

type FavoriteResp struct {
	Result  string   `json:"result"`
	Applied []string `json:"applied"`
}

type LoginReq struct {
	UserID   string `json:"user_id" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=256"`
}

type LoginResp struct {
	Result string `json:"result"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

const ResultSuccess = "SUCCESS"
