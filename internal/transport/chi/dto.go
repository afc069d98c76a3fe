package chi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kailas-cloud/leadscope/internal/domain"
	"github.com/kailas-cloud/leadscope/internal/domain/search/filter"
	"github.com/kailas-cloud/leadscope/internal/domain/search/request"
)

// Search types accepted by POST /search.
const (
	searchTypeContacts  = "contacts"
	searchTypeCampaigns = "campaigns"
	searchTypeAll       = "all"
)

type searchRequest struct {
	Query      string `json:"query" validate:"required,max=4096"`
	SearchType string `json:"searchType" validate:"omitempty,oneof=contacts campaigns all"`
	Limit      int    `json:"limit" validate:"gte=0"`
}

type filterDTO struct {
	Column   string          `json:"column" validate:"required,max=64"`
	Operator string          `json:"operator" validate:"required"`
	Value    json.RawMessage `json:"value"`
	Value2   json.RawMessage `json:"value2"`
}

type groupDTO struct {
	Filters     []filterDTO `json:"filters" validate:"max=32,dive"`
	CombineWith string      `json:"combineWith" validate:"omitempty,oneof=AND OR and or"`
}

type advancedSearchRequest struct {
	Filters      []filterDTO `json:"filters" validate:"max=64,dive"`
	FilterGroups []groupDTO  `json:"filterGroups" validate:"max=16,dive"`
	GlobalSearch string      `json:"globalSearch" validate:"max=4096"`
	SortBy       string      `json:"sortBy" validate:"max=64"`
	SortOrder    string      `json:"sortOrder" validate:"omitempty,oneof=asc desc ASC DESC"`
	Page         int         `json:"page" validate:"gte=0"`
	PageSize     int         `json:"pageSize" validate:"gte=0"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validate runs struct tags and reports the first failing field by its JSON path.
func (s *Server) validate(req any) error {
	err := s.validator.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.NewValidationError(domain.ErrInvalidQuery, "body", err.Error())
	}
	fe := fieldErrs[0]
	_, path, _ := strings.Cut(fe.Namespace(), ".")
	cause := "failed " + fe.Tag()
	if fe.Param() != "" {
		cause += "=" + fe.Param()
	}
	return domain.NewValidationError(domain.ErrInvalidQuery, path, cause)
}

func (req advancedSearchRequest) toQuery() (request.Query, error) {
	filters, err := filtersFromDTO(req.Filters)
	if err != nil {
		return request.Query{}, err
	}

	groups := make([]filter.Group, 0, len(req.FilterGroups))
	for _, g := range req.FilterGroups {
		members, err := filtersFromDTO(g.Filters)
		if err != nil {
			return request.Query{}, err
		}
		c, ok := filter.ParseCombinator(g.CombineWith)
		if !ok {
			return request.Query{}, domain.NewValidationError(domain.ErrInvalidQuery, "combineWith", "must be AND or OR")
		}
		group, err := filter.NewGroup(members, c)
		if err != nil {
			return request.Query{}, err
		}
		groups = append(groups, group)
	}

	q, err := request.New(filters, groups, req.GlobalSearch, req.SortBy, req.SortOrder, req.Page, req.PageSize)
	if err != nil {
		return request.Query{}, fmt.Errorf("build query: %w", err)
	}
	return q, nil
}

func filtersFromDTO(dtos []filterDTO) ([]filter.Filter, error) {
	out := make([]filter.Filter, 0, len(dtos))
	for _, d := range dtos {
		f, err := d.toFilter()
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (d filterDTO) toFilter() (filter.Filter, error) {
	op := filter.Operator(d.Operator)
	v, err := parseValue(d.Value)
	if err != nil {
		return filter.Filter{}, domain.NewValidationError(domain.ErrInvalidFilter, d.Column, err.Error())
	}
	if op == filter.Between && v.Kind() != filter.KindRange {
		to, err := parseValue(d.Value2)
		if err != nil {
			return filter.Filter{}, domain.NewValidationError(domain.ErrInvalidFilter, d.Column, err.Error())
		}
		v = filter.Range(v, to)
	}
	return filter.New(d.Column, op, v)
}

// parseValue reads a filter operand from its raw JSON token: string, number,
// boolean, list of scalars, or {"from": x, "to": y}. Absent and null are None.
func parseValue(raw json.RawMessage) (filter.Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return filter.None(), nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return filter.Value{}, fmt.Errorf("malformed value: %w", err)
	}

	switch t := decoded.(type) {
	case []any:
		items := make([]string, 0, len(t))
		for _, e := range t {
			v, err := scalar(e)
			if err != nil {
				return filter.Value{}, fmt.Errorf("list item: %w", err)
			}
			items = append(items, v.Text())
		}
		return filter.List(items...), nil
	case map[string]any:
		from, err := scalar(t["from"])
		if err != nil {
			return filter.Value{}, fmt.Errorf("from: %w", err)
		}
		to, err := scalar(t["to"])
		if err != nil {
			return filter.Value{}, fmt.Errorf("to: %w", err)
		}
		return filter.Range(from, to), nil
	default:
		return scalar(t)
	}
}

func scalar(v any) (filter.Value, error) {
	switch t := v.(type) {
	case string:
		return filter.String(t), nil
	case float64:
		return filter.Number(t), nil
	case bool:
		return filter.Bool(t), nil
	case nil:
		return filter.Value{}, errors.New("value is required")
	default:
		return filter.Value{}, fmt.Errorf("unsupported value of type %T", v)
	}
}
