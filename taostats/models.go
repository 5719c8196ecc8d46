package taostats

// Wire models for the Taostats indexer API. Balances arrive as RAO amounts
// encoded as decimal strings.

type Pagination struct {
	CurrentPage int  `json:"current_page"`
	PerPage     int  `json:"per_page"`
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	NextPage    *int `json:"next_page"`
	PrevPage    *int `json:"prev_page"`
}

type AccountAddress struct {
	SS58 string `json:"ss58"`
	Hex  string `json:"hex"`
}

type accountData struct {
	Address                 AccountAddress `json:"address"`
	Network                 string         `json:"network"`
	BlockNumber             int64          `json:"block_number"`
	Timestamp               string         `json:"timestamp"`
	BalanceFree             string         `json:"balance_free"`
	BalanceStaked           string         `json:"balance_staked"`
	BalanceStakedAlphaAsTao string         `json:"balance_staked_alpha_as_tao"`
	BalanceStakedRoot       string         `json:"balance_staked_root"`
	BalanceTotal            string         `json:"balance_total"`
}

type accountResponse struct {
	Pagination Pagination    `json:"pagination"`
	Data       []accountData `json:"data"`
}

type stakeBalanceData struct {
	Coldkey     AccountAddress `json:"coldkey"`
	Hotkey      AccountAddress `json:"hotkey"`
	HotkeyName  string         `json:"hotkey_name"`
	Netuid      uint16         `json:"netuid"`
	SubnetName  string         `json:"subnet_name"`
	Balance     string         `json:"balance"`
	BalanceAsTao string        `json:"balance_as_tao"`
}

type stakeBalanceResponse struct {
	Pagination Pagination         `json:"pagination"`
	Data       []stakeBalanceData `json:"data"`
}

type subnetPoolData struct {
	Netuid   uint16 `json:"netuid"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Price    string `json:"price"`
	TaoIn    string `json:"tao_in"`
	AlphaOut string `json:"alpha_out"`
}

type subnetPoolResponse struct {
	Pagination Pagination       `json:"pagination"`
	Data       []subnetPoolData `json:"data"`
}
