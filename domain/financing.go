package domain

// AmortizationRow es un mes de la tabla de amortización. Todos los
// montos están redondeados a 2 decimales.
type AmortizationRow struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// AmortizationSchedule es el plan de financiamiento completo para la
// compra de un auto.
type AmortizationSchedule struct {
	CarPrice       float64           `json:"car_price"`
	DownPayment    float64           `json:"down_payment"`
	LoanAmount     float64           `json:"loan_amount"`
	TermMonths     int               `json:"term_months"`
	MonthlyPayment float64           `json:"monthly_payment"`
	TotalInterest  float64           `json:"total_interest"`
	TotalPayment   float64           `json:"total_payment"`
	Schedule       []AmortizationRow `json:"schedule"`
}
