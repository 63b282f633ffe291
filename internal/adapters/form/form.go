// Package form decodes submitted key/value form data into garden aggregates.
package form

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"gardenbook/internal/application"
	"gardenbook/internal/domain"
)

// Recognized form keys
const (
	KeyID             = "id"
	KeyName           = "name"
	KeyLatinName      = "latin-name"
	KeyBloomingPeriod = "blooming-period"
	KeyDescription    = "desc"

	PlantPrefix = "plant-"
	JobPrefix   = "job-"
)

// ID returns the record ID carried by the form. A missing id means the form
// describes a new record.
func ID(values url.Values) (int64, bool, error) {
	raw := strings.TrimSpace(values.Get(KeyID))
	if raw == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, &application.ValidationError{Field: KeyID, Message: "invalid ID: " + raw}
	}
	return id, true, nil
}

// DecodeClient reads a client and its plant links
func DecodeClient(values url.Values) (domain.Client, error) {
	id, _, err := ID(values)
	if err != nil {
		return domain.Client{}, err
	}
	plants, err := linkIDs(values, PlantPrefix)
	if err != nil {
		return domain.Client{}, err
	}
	return domain.Client{
		ID:     id,
		Name:   values.Get(KeyName),
		Plants: domain.RefIDs[domain.Plant](plants...),
	}, nil
}

// DecodePlant reads a plant and its job links
func DecodePlant(values url.Values) (domain.Plant, error) {
	id, _, err := ID(values)
	if err != nil {
		return domain.Plant{}, err
	}
	jobs, err := linkIDs(values, JobPrefix)
	if err != nil {
		return domain.Plant{}, err
	}
	return domain.Plant{
		ID:             id,
		Name:           values.Get(KeyName),
		LatinName:      values.Get(KeyLatinName),
		BloomingPeriod: values.Get(KeyBloomingPeriod),
		Jobs:           domain.RefIDs[domain.Maintenance](jobs...),
	}, nil
}

// DecodeJob reads a maintenance job. Month keys outside the canonical
// twelve names are ignored.
func DecodeJob(values url.Values) (domain.Maintenance, error) {
	id, _, err := ID(values)
	if err != nil {
		return domain.Maintenance{}, err
	}
	names := make([]string, 0, len(values))
	for key := range values {
		names = append(names, key)
	}
	return domain.Maintenance{
		ID:          id,
		Name:        values.Get(KeyName),
		Description: values.Get(KeyDescription),
		Months:      domain.ParseMonthSet(names...),
	}, nil
}

// linkIDs collects the IDs named by prefixed link fields. A field whose
// value is an integer links that ID; otherwise the integer suffix of the key
// is the ID. Keys in sorted order keep the result stable.
func linkIDs(values url.Values, prefix string) ([]int64, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var ids []int64
	for _, key := range keys {
		for _, v := range values[key] {
			if id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				ids = append(ids, id)
				continue
			}
			suffix := strings.TrimPrefix(key, prefix)
			id, err := strconv.ParseInt(suffix, 10, 64)
			if err != nil {
				return nil, &application.ValidationError{
					Field:   key,
					Message: "link field needs a numeric value or suffix",
				}
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Encode renders an aggregate back into form values, the inverse of the
// Decode functions.
func Encode(v any) url.Values {
	values := url.Values{}
	switch rec := v.(type) {
	case domain.Client:
		setID(values, rec.ID)
		values.Set(KeyName, rec.Name)
		for _, id := range rec.Plants.IDs() {
			values.Add(PlantPrefix+strconv.FormatInt(id, 10), "on")
		}
	case domain.Plant:
		setID(values, rec.ID)
		values.Set(KeyName, rec.Name)
		values.Set(KeyLatinName, rec.LatinName)
		values.Set(KeyBloomingPeriod, rec.BloomingPeriod)
		for _, id := range rec.Jobs.IDs() {
			values.Add(JobPrefix+strconv.FormatInt(id, 10), "on")
		}
	case domain.Maintenance:
		setID(values, rec.ID)
		values.Set(KeyName, rec.Name)
		values.Set(KeyDescription, rec.Description)
		for _, name := range rec.Months.Names() {
			values.Set(name, "on")
		}
	}
	return values
}

func setID(values url.Values, id int64) {
	if id != 0 {
		values.Set(KeyID, strconv.FormatInt(id, 10))
	}
}
