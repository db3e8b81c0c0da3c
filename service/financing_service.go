package service

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"car-agent/domain"
)

var (
	// ErrInvalidTerm indica un plazo fuera del rango configurado.
	ErrInvalidTerm = errors.New("plazo inválido")
	// ErrInvalidDownPayment indica un enganche mayor o igual al
	// precio del auto.
	ErrInvalidDownPayment = errors.New("enganche inválido")
)

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// FinancingService calcula cuotas mensuales y tablas de amortización
// con tasa fija. Es puro: no guarda estado por solicitud.
type FinancingService struct {
	interestRate float64 // tasa anual, p. ej. 0.10
	minTerm      int
	maxTerm      int
	log          *zap.SugaredLogger
}

func NewFinancingService(interestRate float64, minTerm, maxTerm int, log *zap.SugaredLogger) *FinancingService {
	log.Infow("servicio de financiamiento inicializado",
		"interest_rate", interestRate, "min_term", minTerm, "max_term", maxTerm)
	return &FinancingService{
		interestRate: interestRate,
		minTerm:      minTerm,
		maxTerm:      maxTerm,
		log:          log,
	}
}

// MonthlyPayment calcula la cuota mensual de un préstamo a tasa fija.
func (s *FinancingService) MonthlyPayment(principal float64, termMonths int) (float64, error) {
	if termMonths < s.minTerm || termMonths > s.maxTerm {
		s.log.Warnw("plazo fuera de rango", "term_months", termMonths)
		return 0, fmt.Errorf("%w: el plazo debe estar entre %d y %d meses",
			ErrInvalidTerm, s.minTerm, s.maxTerm)
	}

	if s.interestRate == 0 {
		return principal / float64(termMonths), nil
	}

	monthlyRate := s.interestRate / 12
	factor := math.Pow(1+monthlyRate, float64(termMonths))
	payment := principal * monthlyRate * factor / (factor - 1)
	return payment, nil
}

// AmortizationSchedule calcula el plan de financiamiento completo para
// un auto. Cada fila se redondea a 2 decimales; el saldo corriente se
// acumula sin redondear para no arrastrar el error de redondeo.
//
// TotalPayment es cuota por plazo, no la suma de las filas
// redondeadas; la pequeña divergencia con la tabla es intencional.
func (s *FinancingService) AmortizationSchedule(carPrice, downPayment float64, termMonths int) (domain.AmortizationSchedule, error) {
	if carPrice <= 0 {
		return domain.AmortizationSchedule{}, errors.New("precio inválido")
	}
	if carPrice > MaxCarPrice {
		return domain.AmortizationSchedule{}, fmt.Errorf("precio excede el máximo permitido de $%.2f", MaxCarPrice)
	}
	if downPayment < 0 {
		return domain.AmortizationSchedule{}, errors.New("enganche negativo")
	}
	if downPayment >= carPrice {
		s.log.Warnw("enganche mayor o igual al precio",
			"car_price", carPrice, "down_payment", downPayment)
		return domain.AmortizationSchedule{}, fmt.Errorf(
			"%w: el enganche no puede ser mayor o igual al precio del auto", ErrInvalidDownPayment)
	}

	loanAmount := carPrice - downPayment
	payment, err := s.MonthlyPayment(loanAmount, termMonths)
	if err != nil {
		return domain.AmortizationSchedule{}, err
	}

	monthlyRate := s.interestRate / 12
	balance := loanAmount
	schedule := make([]domain.AmortizationRow, 0, termMonths)
	var totalInterest float64

	for month := 1; month <= termMonths; month++ {
		interest := balance * monthlyRate
		principal := payment - interest
		balance -= principal

		row := domain.AmortizationRow{
			Month:     month,
			Payment:   roundTo2Decimals(payment),
			Principal: roundTo2Decimals(principal),
			Interest:  roundTo2Decimals(interest),
			Balance:   roundTo2Decimals(balance),
		}
		schedule = append(schedule, row)
		totalInterest += row.Interest
	}

	result := domain.AmortizationSchedule{
		CarPrice:       carPrice,
		DownPayment:    downPayment,
		LoanAmount:     loanAmount,
		TermMonths:     termMonths,
		MonthlyPayment: roundTo2Decimals(payment),
		TotalInterest:  roundTo2Decimals(totalInterest),
		TotalPayment:   roundTo2Decimals(payment * float64(termMonths)),
		Schedule:       schedule,
	}
	s.log.Infow("tabla de amortización calculada",
		"loan_amount", loanAmount, "term_months", termMonths,
		"monthly_payment", result.MonthlyPayment)
	return result, nil
}
