package lichess

import "context"

type Account struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Title    string  `json:"title"`
	Profile  Profile `json:"profile"`

	Disabled bool `json:"disabled"`

	CreatedAt int64 `json:"createdAt"`
	SeenAt    int64 `json:"seenAt"`
}

func (account *Account) IsBot() bool {
	return account.Title == BotTitle
}

type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Country   string `json:"country"`
}

func (lc *Client) GetAccount(ctx context.Context) (*Account, error) {
	res := Account{}
	if err := lc.doJSONRequest(ctx, "GET", "/api/account", nil, &res); err != nil {
		return nil, err
	}

	return &res, nil
}
