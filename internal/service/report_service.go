package service

import (
	"context"

	"trasporto-backend/internal/apperr"
	"trasporto-backend/internal/model"
	"trasporto-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportTrip is one occurrence enriched with the names and the destination
// cost it carries in a report.
type ReportTrip struct {
	Date            string          `json:"date"`
	StartTime       string          `json:"startTime"`
	UserName        string          `json:"userName"`
	DriverName      string          `json:"driverName"`
	DestinationName string          `json:"destinationName"`
	Cost            decimal.Decimal `json:"cost"`
}

type UserReport struct {
	UserID    string          `json:"userId"`
	UserName  string          `json:"userName"`
	TripCount int             `json:"tripCount"`
	TotalCost decimal.Decimal `json:"totalCost"`
	Trips     []ReportTrip    `json:"trips"`
}

type DriverReport struct {
	DriverID   string          `json:"driverId"`
	DriverName string          `json:"driverName"`
	TripCount  int             `json:"tripCount"`
	TotalCost  decimal.Decimal `json:"totalCost"`
	Trips      []ReportTrip    `json:"trips"`
}

type DestinationReport struct {
	DestinationID   string          `json:"destinationId"`
	DestinationName string          `json:"destinationName"`
	TripCount       int             `json:"tripCount"`
	TotalCost       decimal.Decimal `json:"totalCost"`
}

// ReportService aggregates transports per user, driver and destination over
// an inclusive date range. Costs come from the referenced destination's
// per-trip reimbursement amount.
type ReportService interface {
	UserReports(ctx context.Context, from, to string) ([]UserReport, error)
	DriverReports(ctx context.Context, from, to string) ([]DriverReport, error)
	DestinationReports(ctx context.Context, from, to string) ([]DestinationReport, error)
}

type reportService struct {
	transports   repository.TransportRepository
	persons      repository.PersonRepository
	drivers      repository.DriverRepository
	destinations repository.DestinationRepository
}

func NewReportService(
	transports repository.TransportRepository,
	persons repository.PersonRepository,
	drivers repository.DriverRepository,
	destinations repository.DestinationRepository,
) ReportService {
	return &reportService{
		transports:   transports,
		persons:      persons,
		drivers:      drivers,
		destinations: destinations,
	}
}

type reportData struct {
	transports   []model.Transport
	persons      map[string]model.Person
	drivers      map[string]model.Driver
	destinations map[string]model.Destination
}

func (s *reportService) load(ctx context.Context, from, to string) (*reportData, error) {
	if from != "" {
		if _, err := parseDate(from, "from"); err != nil {
			return nil, err
		}
	}
	if to != "" {
		if _, err := parseDate(to, "to"); err != nil {
			return nil, err
		}
	}

	transports, err := s.transports.ListRange(ctx, from, to)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	persons, err := s.persons.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	drivers, err := s.drivers.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	destinations, err := s.destinations.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	data := &reportData{
		transports:   transports,
		persons:      make(map[string]model.Person, len(persons)),
		drivers:      make(map[string]model.Driver, len(drivers)),
		destinations: make(map[string]model.Destination, len(destinations)),
	}
	for _, p := range persons {
		data.persons[p.ID.String()] = p
	}
	for _, d := range drivers {
		data.drivers[d.ID.String()] = d
	}
	for _, d := range destinations {
		data.destinations[d.ID.String()] = d
	}
	return data, nil
}

func (d *reportData) trip(t model.Transport) ReportTrip {
	trip := ReportTrip{
		Date:      t.Date,
		StartTime: t.StartTime,
	}
	if p, ok := d.persons[t.UserID.String()]; ok {
		trip.UserName = p.Name
	}
	if dr, ok := d.drivers[t.DriverID.String()]; ok {
		trip.DriverName = dr.Name
	}
	if dest, ok := d.destinations[t.DestinationID.String()]; ok {
		trip.DestinationName = dest.Name
		trip.Cost = dest.Cost
	}
	return trip
}

// UserReports groups trips by ride recipient; users with no trips in the
// range are omitted, matching the original reports view.
func (s *reportService) UserReports(ctx context.Context, from, to string) ([]UserReport, error) {
	data, err := s.load(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byUser := make(map[string]*UserReport)
	var order []string
	for _, t := range data.transports {
		id := t.UserID.String()
		report, ok := byUser[id]
		if !ok {
			person, exists := data.persons[id]
			if !exists {
				continue
			}
			report = &UserReport{UserID: id, UserName: person.Name}
			byUser[id] = report
			order = append(order, id)
		}
		trip := data.trip(t)
		report.Trips = append(report.Trips, trip)
		report.TripCount++
		report.TotalCost = report.TotalCost.Add(trip.Cost)
	}

	reports := make([]UserReport, 0, len(order))
	for _, id := range order {
		reports = append(reports, *byUser[id])
	}
	return reports, nil
}

func (s *reportService) DriverReports(ctx context.Context, from, to string) ([]DriverReport, error) {
	data, err := s.load(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byDriver := make(map[string]*DriverReport)
	var order []string
	for _, t := range data.transports {
		id := t.DriverID.String()
		report, ok := byDriver[id]
		if !ok {
			driver, exists := data.drivers[id]
			if !exists {
				continue
			}
			report = &DriverReport{DriverID: id, DriverName: driver.Name}
			byDriver[id] = report
			order = append(order, id)
		}
		trip := data.trip(t)
		report.Trips = append(report.Trips, trip)
		report.TripCount++
		report.TotalCost = report.TotalCost.Add(trip.Cost)
	}

	reports := make([]DriverReport, 0, len(order))
	for _, id := range order {
		reports = append(reports, *byDriver[id])
	}
	return reports, nil
}

func (s *reportService) DestinationReports(ctx context.Context, from, to string) ([]DestinationReport, error) {
	data, err := s.load(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byDestination := make(map[string]*DestinationReport)
	var order []string
	for _, t := range data.transports {
		id := t.DestinationID.String()
		report, ok := byDestination[id]
		if !ok {
			destination, exists := data.destinations[id]
			if !exists {
				continue
			}
			report = &DestinationReport{DestinationID: id, DestinationName: destination.Name}
			byDestination[id] = report
			order = append(order, id)
		}
		report.TripCount++
		report.TotalCost = report.TotalCost.Add(data.destinations[id].Cost)
	}

	reports := make([]DestinationReport, 0, len(order))
	for _, id := range order {
		reports = append(reports, *byDestination[id])
	}
	return reports, nil
}
