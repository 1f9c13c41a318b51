package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fieldprofiler/fieldprofiler/domain/models"
	"github.com/fieldprofiler/fieldprofiler/profiler"
)

func resultWithReport(field string, rep *models.FieldReport) *models.AnalysisResult {
	return &models.AnalysisResult{
		FieldOrder: []string{field},
		Reports:    map[string]*models.FieldReport{field: rep},
	}
}

func TestSelectionNullAndEmpty(t *testing.T) {
	res := resultWithReport("name", models.NewFieldReport())

	sel, err := ForStatistic(res, "name", profiler.KeyNullCount)
	assert.NoError(t, err)
	assert.Equal(t, `"name" IS NULL`, sel.Expression)

	sel, err = ForStatistic(res, "name", profiler.KeyEmptyStrings)
	assert.NoError(t, err)
	assert.Equal(t, `"name" = ''`, sel.Expression)

	sel, err = ForStatistic(res, "name", profiler.KeyLeadTrailSpaces)
	assert.NoError(t, err)
	assert.Equal(t, `"name" != trim("name")`, sel.Expression)
}

func TestSelectionOutlierFence(t *testing.T) {
	rep := models.NewFieldReport()
	rep.Set(profiler.KeyQ1, models.FloatStat(3.25))
	rep.Set(profiler.KeyQ3, models.FloatStat(7.75))
	rep.Set(profiler.KeyIQR, models.FloatStat(4.5))
	res := resultWithReport("amount", rep)

	sel, err := ForStatistic(res, "amount", profiler.KeyOutliers)
	assert.NoError(t, err)
	assert.Equal(t, `("amount" < -3.5 OR "amount" > 14.5)`, sel.Expression)
}

func TestSelectionOutlierWithoutQuartiles(t *testing.T) {
	res := resultWithReport("amount", models.NewFieldReport())
	_, err := ForStatistic(res, "amount", profiler.KeyOutliers)
	assert.ErrorIs(t, err, ErrNotSelectable)
}

func TestSelectionTopValueEscaping(t *testing.T) {
	rep := models.NewFieldReport()
	top := models.StringValue("O'Brien")
	rep.TopValue = &top
	res := resultWithReport("name", rep)

	sel, err := ForStatistic(res, "name", profiler.KeyTopValues)
	assert.NoError(t, err)
	assert.Equal(t, `"name" = 'O''Brien'`, sel.Expression)
}

func TestSelectionTopValueTemporal(t *testing.T) {
	rep := models.NewFieldReport()
	top := models.DateValue(time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC))
	rep.TopValue = &top
	res := resultWithReport("created", rep)

	sel, err := ForStatistic(res, "created", profiler.KeyTopValues)
	assert.NoError(t, err)
	assert.Equal(t, `"created" = date('2024-07-01')`, sel.Expression)

	dt := models.DateTimeValue(time.Date(2024, time.July, 1, 8, 30, 0, 0, time.UTC))
	rep.TopValue = &dt
	sel, err = ForStatistic(res, "created", profiler.KeyTopValues)
	assert.NoError(t, err)
	assert.Equal(t, `"created" = datetime('2024-07-01 08:30:00')`, sel.Expression)
}

func TestSelectionByIDLists(t *testing.T) {
	res := resultWithReport("amount", models.NewFieldReport())
	res.ConversionErrors = map[string]models.IDList{
		"amount": {IDs: []int64{2, 7}, Capped: true},
	}

	sel, err := ForStatistic(res, "amount", profiler.KeyConversionErrors)
	assert.NoError(t, err)
	assert.Equal(t, []int64{2, 7}, sel.IDs)
	assert.True(t, sel.Capped)
	assert.Empty(t, sel.Expression)
}

func TestSelectionUnknownStatistic(t *testing.T) {
	res := resultWithReport("name", models.NewFieldReport())
	_, err := ForStatistic(res, "name", profiler.KeyMean)
	assert.ErrorIs(t, err, ErrNotSelectable)

	_, err = ForStatistic(res, "missing", profiler.KeyNullCount)
	assert.Error(t, err)
}

func TestSelectionQuotedFieldName(t *testing.T) {
	res := resultWithReport(`odd"name`, models.NewFieldReport())
	sel, err := ForStatistic(res, `odd"name`, profiler.KeyNullCount)
	assert.NoError(t, err)
	assert.Equal(t, `"odd""name" IS NULL`, sel.Expression)
}
