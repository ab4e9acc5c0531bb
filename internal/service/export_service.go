package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/ocenagor/admin-backend/internal/models"
	"github.com/ocenagor/admin-backend/internal/stats"
)

// Форматы выгрузки отзывов.
const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
)

// exportHeaders — фиксированный порядок колонок выгрузки.
var exportHeaders = []string{
	"Дата", "Компания", "Оценка", "Сценарий", "Комментарий",
	"Email", "Телефон", "Теги", "Завершён", "Переход в Google", "Способ перехода",
}

// ExportService выгружает отфильтрованные отзывы в CSV или XLSX.
type ExportService struct {
	reviews *ReviewService
}

func NewExportService(reviews *ReviewService) *ExportService {
	return &ExportService{reviews: reviews}
}

// ExportReviews пишет выгрузку в w. Выборка проходит тот же конвейер
// фильтрации, что и списки в админ-панели, но без постраничной нарезки.
func (s *ExportService) ExportReviews(ctx context.Context, w io.Writer, scope models.AccessScope, format string, sel stats.Selection, search string, companyID *uuid.UUID) error {
	list, err := s.reviews.ListReviews(ctx, scope, ListParams{
		Selection: sel,
		Search:    search,
		SortKey:   stats.SortKeyCreatedAt,
		SortDir:   stats.SortDesc,
		Page:      1,
		PerPage:   stats.DefaultMaxRecords,
		CompanyID: companyID,
	})
	if err != nil {
		return err
	}

	switch format {
	case ExportFormatXLSX:
		return writeXLSX(w, list.Result.Filtered, list.Companies)
	case ExportFormatCSV, "":
		return writeCSV(w, list.Result.Filtered, list.Companies)
	default:
		return fmt.Errorf("export service: неизвестный формат %q", format)
	}
}

func writeCSV(w io.Writer, reviews []models.Review, companies map[uuid.UUID]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders); err != nil {
		return err
	}
	for i := range reviews {
		if err := cw.Write(exportRow(&reviews[i], companies)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, reviews []models.Review, companies map[uuid.UUID]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Отзывы"
	f.SetSheetName("Sheet1", sheet)

	headers := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		headers[i] = h
	}
	f.SetSheetRow(sheet, "A1", &headers)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "K1", style)

	for i := range reviews {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := exportRow(&reviews[i], companies)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		f.SetSheetRow(sheet, cell, &values)
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "B", 25)
	f.SetColWidth(sheet, "E", "E", 40)
	f.SetColWidth(sheet, "F", "H", 22)

	return f.Write(w)
}

// exportRow переводит отзыв в строку выгрузки в порядке exportHeaders.
func exportRow(r *models.Review, companies map[uuid.UUID]string) []string {
	return []string{
		r.CreatedAt.Format(time.RFC3339),
		companies[r.CompanyID],
		strconv.Itoa(r.Rating),
		r.FlowType,
		strValue(r.Comment),
		strValue(r.Email),
		strValue(r.Phone),
		strings.Join(r.FeedbackOptions, "; "),
		yesNo(r.IsCompleted()),
		timeValue(r.RedirectedToGoogleAt),
		strValue(r.RedirectMethod),
	}
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeValue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func yesNo(v bool) string {
	if v {
		return "да"
	}
	return "нет"
}
