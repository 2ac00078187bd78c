package usecase_test

import (
	"time"

	"github.com/velo-paris-dashboard/internal/domain"
)

var paris = time.FixedZone("CEST", 2*3600)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, paris)
}

func installedIn(y int) *time.Time {
	t := time.Date(y, time.March, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

// sampleTable - три счётчика, апрель и июнь 2023
func sampleTable() *domain.Table {
	sebastopol := &domain.Point{Lat: 48.86462, Lon: 2.35016}
	tournelle := &domain.Point{Lat: 48.85013, Lon: 2.35423}

	return domain.NewTable([]domain.Reading{
		{CounterName: "Totem 73 boulevard de Sébastopol", CountedAt: at(2023, time.April, 3, 8), InstalledAt: installedIn(2020), Location: sebastopol, HourlyCount: 400},
		{CounterName: "Totem 73 boulevard de Sébastopol", CountedAt: at(2023, time.April, 3, 9), InstalledAt: installedIn(2020), Location: sebastopol, HourlyCount: 300},
		{CounterName: "27 quai de la Tournelle", CountedAt: at(2023, time.April, 3, 8), InstalledAt: installedIn(2017), Location: tournelle, HourlyCount: 100},
		{CounterName: "27 quai de la Tournelle", CountedAt: at(2023, time.June, 5, 8), InstalledAt: installedIn(2017), Location: tournelle, HourlyCount: 50},
		{CounterName: "Pont des Invalides", CountedAt: at(2023, time.June, 6, 17), HourlyCount: 20},
		{CounterName: "Pont des Invalides", CountedAt: at(2023, time.May, 1, 17), HourlyCount: 10},
	}, 1)
}
