// Package endpoints declares the game-statistics queries as descriptors the
// query pipeline can interpret. Chart ids and tokens are per-endpoint values
// assigned by the remote service and are not interchangeable.
package endpoints

import (
	"encoding/json"
	"fmt"

	"github.com/dfstats/deltaquery/internal/core/domain"
	"github.com/dfstats/deltaquery/internal/query"
)

// Host serves every chart query.
const Host = "comm.ams.game.qq.com"

// Known currency item ids.
const (
	ItemHavocCoin      = "17020000010"
	ItemTriangleTicket = "17888808889"
	ItemTriangleCoin   = "17888808888"
)

// Definition describes one endpoint before runtime collaborators (parameter
// source, sink) are bound to it.
type Definition struct {
	Name      string
	Label     string
	Builder   query.ParamBuilder
	Validator query.Validator
}

// Definitions lists every supported query endpoint.
func Definitions() []Definition {
	return []Definition{
		{
			Name:      "daily-report",
			Label:     "daily report retrieved",
			Builder:   dailyReportBuilder{},
			Validator: query.OneOfField{Field: "resource_type", Label: "resource type", Allowed: []string{"sol", "mp"}},
		},
		{
			Name:    "special-duty",
			Label:   "special duty status retrieved",
			Builder: specialDutyBuilder{},
		},
		{
			Name:      "weekly-report",
			Label:     "weekly battle report retrieved",
			Builder:   weeklyReportBuilder{},
			Validator: weeklyValidator(),
		},
		{
			Name:      "daily-secret",
			Label:     "daily secret retrieved",
			Builder:   dailySecretBuilder{},
			Validator: query.RequiredField{Field: "source", Label: "secret source"},
		},
		{
			Name:      "friend-report",
			Label:     "weekly teammate report retrieved",
			Builder:   friendReportBuilder{},
			Validator: weeklyValidator(),
		},
		{
			Name:      "fire-weekly-report",
			Label:     "operations weekly report retrieved",
			Builder:   fireWeeklyBuilder{},
			Validator: query.DateField{Field: "stat_date", Label: "stat date"},
		},
		{
			Name:      "currency",
			Label:     "currency holdings retrieved",
			Builder:   currencyBuilder{},
			Validator: query.RequiredField{Field: "item", Label: "currency item"},
		},
	}
}

func weeklyValidator() query.Validator {
	return query.All{
		query.DateField{Field: "stat_date", Label: "stat date"},
		query.OneOfField{Field: "mode", Label: "mode", Allowed: []string{"sol", "mp"}},
	}
}

// BuildRegistry binds every definition to its runtime collaborators.
// newSource is called once per definition so each descriptor can read its
// own parameter set.
func BuildRegistry(newSource func(Definition) query.ParamSource, sink query.Sink) (*query.Registry, error) {
	reg := query.NewRegistry()
	for _, def := range Definitions() {
		err := reg.Register(query.Descriptor{
			Name:      def.Name,
			Label:     def.Label,
			Host:      Host,
			Source:    newSource(def),
			Validator: def.Validator,
			Builder:   def.Builder,
			Sink:      sink,
		})
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", def.Name, err)
		}
	}
	return reg, nil
}

func str(p domain.Params, key string) string {
	s, _ := p[key].(string)
	return s
}

func jsonBlob(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode param blob: %w", err)
	}
	return string(b), nil
}

type dailyReportBuilder struct{}

func (dailyReportBuilder) Build(p domain.Params) (domain.Params, error) {
	blob, err := jsonBlob(map[string]string{"resourceType": str(p, "resource_type")})
	if err != nil {
		return nil, err
	}
	return domain.Params{
		"iChartId":    "316969",
		"iSubChartId": "316969",
		"sIdeToken":   "NoOapI",
		"method":      "dfm/center.recent.detail",
		"source":      "2",
		"sArea":       str(p, "s_area"),
		"param":       blob,
	}, nil
}

type specialDutyBuilder struct{}

func (specialDutyBuilder) Build(domain.Params) (domain.Params, error) {
	return domain.Params{
		"iChartId":    "365589",
		"iSubChartId": "365589",
		"sIdeToken":   "bQaMCQ",
		"source":      "2",
	}, nil
}

type weeklyReportBuilder struct{}

func (weeklyReportBuilder) Build(p domain.Params) (domain.Params, error) {
	blob, err := jsonBlob(map[string]string{"statDate": str(p, "stat_date")})
	if err != nil {
		return nil, err
	}
	return domain.Params{
		"iChartId":    "316969",
		"iSubChartId": "316969",
		"sIdeToken":   "NoOapI",
		"method":      fmt.Sprintf("dfm/weekly.%s.record", str(p, "mode")),
		"source":      "5",
		"sArea":       str(p, "s_area"),
		"param":       blob,
	}, nil
}

type dailySecretBuilder struct{}

func (dailySecretBuilder) Build(p domain.Params) (domain.Params, error) {
	return domain.Params{
		"iChartId":    "316969",
		"iSubChartId": "316969",
		"sIdeToken":   "NoOapI",
		"method":      "dfm/center.day.secret",
		"source":      str(p, "source"),
		"param":       "{}",
	}, nil
}

type friendReportBuilder struct{}

func (friendReportBuilder) Build(p domain.Params) (domain.Params, error) {
	method := fmt.Sprintf("dfm/weekly.%s.friend.record", str(p, "mode"))
	blob, err := jsonBlob(map[string]string{
		"source":   "5",
		"method":   method,
		"statDate": str(p, "stat_date"),
	})
	if err != nil {
		return nil, err
	}
	return domain.Params{
		"iChartId":    "316968",
		"iSubChartId": "316968",
		"sIdeToken":   "KfXJwH",
		"method":      method,
		"source":      "5",
		"sArea":       str(p, "s_area"),
		"statDate":    str(p, "stat_date"),
		"param":       blob,
	}, nil
}

type fireWeeklyBuilder struct{}

func (fireWeeklyBuilder) Build(p domain.Params) (domain.Params, error) {
	const method = "dfm/weekly.sol.record"
	blob, err := jsonBlob(map[string]string{
		"source":   "5",
		"method":   method,
		"statDate": str(p, "stat_date"),
	})
	if err != nil {
		return nil, err
	}
	return domain.Params{
		"iChartId":    "316968",
		"iSubChartId": "316968",
		"sIdeToken":   "KfXJwH",
		"method":      method,
		"source":      "5",
		"sArea":       str(p, "s_area"),
		"statDate":    str(p, "stat_date"),
		"param":       blob,
	}, nil
}

type currencyBuilder struct{}

func (currencyBuilder) Build(p domain.Params) (domain.Params, error) {
	return domain.Params{
		"iChartId":    "319386",
		"iSubChartId": "319386",
		"sIdeToken":   "zMemOt",
		"item":        str(p, "item"),
		"type":        "3",
	}, nil
}
