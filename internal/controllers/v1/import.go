package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/importer"
	"github.com/finance-tracker/backend/internal/importer/parser/ofx"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

var ofxSuffixes = []string{".ofx", ".qfx"}

// RegisterImportRoutes registers the routes for imports with
// the RouterGroup that is passed.
func (co Controller) RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/ofx", OptionsPost)
	r.POST("/ofx", co.ImportOFX)
	r.OPTIONS("/ofx-preview", OptionsPost)
	r.POST("/ofx-preview", co.ImportOFXPreview)
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffixes ...string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !slices.Contains(suffixes, strings.ToLower(filepath.Ext(formFile.Filename))) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, strings.Join(suffixes, ", "))
	}

	return formFile.Open()
}

// previews parses the uploaded statement and applies the match rules and
// duplicate detection of the user.
func (co Controller) previews(c *gin.Context) ([]importer.TransactionPreview, error) {
	f, err := getUploadedFile(c, ofxSuffixes...)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	previews, err := ofx.Parse(f)
	if err != nil {
		return nil, err
	}

	rules, err := models.UserMatchRules(co.db(c), auth.UserID(c))
	if err != nil {
		return nil, err
	}

	categories := make(map[uuid.UUID]models.Category, len(rules))
	for _, rule := range rules {
		categories[rule.CategoryID] = rule.Category
	}

	for i := range previews {
		previews[i].Transaction.UserID = auth.UserID(c)
		importer.Match(&previews[i], rules)

		if id := previews[i].Transaction.CategoryID; id != nil {
			category := categories[*id]
			previews[i].Transaction.Category = &category
		}
	}

	err = importer.Duplicates(co.db(c), auth.UserID(c), previews)
	if err != nil {
		return nil, err
	}

	return previews, nil
}

// @Summary		Preview OFX import
// @Description	Returns the transactions of an OFX or QFX statement with the categories assigned by the match rules and the IDs of transactions that were imported before. Nothing is stored.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		200		{object}	ImportPreviewList
// @Failure		400		{object}	ImportPreviewList
// @Failure		500		{object}	ImportPreviewList
// @Param			file	formData	file	true	"File to import"
// @Router			/v1/import/ofx-preview [post]
func (co Controller) ImportOFXPreview(c *gin.Context) {
	previews, err := co.previews(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportPreviewList{Error: &s})
		return
	}

	data := make([]TransactionPreview, 0, len(previews))
	for _, preview := range previews {
		data = append(data, newTransactionPreview(c, preview))
	}

	c.JSON(http.StatusOK, ImportPreviewList{Data: data})
}

// @Summary		Import OFX
// @Description	Imports the transactions of an OFX or QFX statement. Statement lines that were imported before are skipped, match rules assign categories.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		201		{object}	ImportResponse
// @Failure		400		{object}	ImportResponse
// @Failure		500		{object}	ImportResponse
// @Param			file	formData	file	true	"File to import"
// @Router			/v1/import/ofx [post]
func (co Controller) ImportOFX(c *gin.Context) {
	previews, err := co.previews(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{Error: &s})
		return
	}

	result := ImportResult{Transactions: make([]Transaction, 0)}
	created := make([]uuid.UUID, 0, len(previews))
	seen := make(map[string]bool)

	err = co.db(c).Transaction(func(tx *gorm.DB) error {
		for _, preview := range previews {
			// Lines with the same FITID in one file are only imported once
			if len(preview.DuplicateTransactionIDs) > 0 || seen[preview.Transaction.ExternalID] {
				result.Duplicates++
				continue
			}
			seen[preview.Transaction.ExternalID] = true

			transaction := preview.Transaction
			transaction.Category = nil
			if err := tx.Create(&transaction).Error; err != nil {
				return err
			}
			created = append(created, transaction.ID)
		}
		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{Error: &s})
		return
	}

	for _, id := range created {
		transaction, err := co.loadTransaction(c, id)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ImportResponse{Error: &s})
			return
		}
		result.Transactions = append(result.Transactions, newTransaction(c, transaction))
	}
	result.Created = len(created)

	log.Info().Str("user", auth.UserID(c).String()).Int("created", result.Created).Int("duplicates", result.Duplicates).Msg("OFX import")
	c.JSON(http.StatusCreated, ImportResponse{Data: &result})
}
