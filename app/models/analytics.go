package models

// MonthlyRevenue is one row of the revenue report.
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// ServiceDemand is one row of the category demand report.
type ServiceDemand struct {
	Service  string `json:"service"`
	Bookings int    `json:"bookings"`
}

// Earnings summarises a decorator's assigned work.
type Earnings struct {
	Total     float64 `json:"total"`
	Completed int     `json:"completed"`
	Pending   int     `json:"pending"`
}

// Transaction is a checkout session as shown in a customer's payment history.
type Transaction struct {
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	Email         string  `json:"email"`
	ServiceID     string  `json:"serviceId"`
	ServiceName   string  `json:"serviceName"`
	Category      string  `json:"category"`
	Photo         string  `json:"photo"`
	CreatedAt     int64   `json:"createdAt"`
}
