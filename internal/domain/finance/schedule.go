package finance

import "time"

// AddMonthsClamped avança a data o número de meses pedido mantendo o dia.
// Quando o dia não existe no mês de destino (31 em fevereiro), trava no
// último dia daquele mês. Cada parcela é calculada a partir da data da
// venda, nunca da parcela anterior, para não acumular deriva.
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()

	first := time.Date(
		y, m+time.Month(months), 1,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		t.Location(),
	)

	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}

	return time.Date(
		first.Year(), first.Month(), d,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		t.Location(),
	)
}

// InstallmentDueDates gera as datas de vencimento das n parcelas.
func InstallmentDueDates(saleDate time.Time, n int) []time.Time {
	dates := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, AddMonthsClamped(saleDate, i))
	}
	return dates
}

// MonthWindow devolve os limites do mês civil de t, no fuso de t.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}
