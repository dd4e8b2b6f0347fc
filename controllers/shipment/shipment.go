package shipment

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"logistics-erp/cache"
	"logistics-erp/logger"
	partModel "logistics-erp/models/part"
	shipmentModel "logistics-erp/models/shipment"
	"logistics-erp/services/enquiry"
	"logistics-erp/services/importer"
	"logistics-erp/services/normalizer"
	"logistics-erp/types"
	shipmentTypes "logistics-erp/types/shipment"
	"logistics-erp/utils"
)

const (
	dashboardCacheKey = "dashboard:summary"
	maxEnquiryRetries = 5
	partUpsertWarning = "part master update failed; shipment saved"
)

// ShipmentController handles the shipment record lifecycle.
type ShipmentController struct {
	DB    *gorm.DB
	Cache *cache.Client
}

// NewShipmentController creates a new shipment controller. cacheClient may be
// nil; the dashboard then skips caching.
func NewShipmentController(db *gorm.DB, cacheClient *cache.Client) *ShipmentController {
	return &ShipmentController{
		DB:    db,
		Cache: cacheClient,
	}
}

// GroupCount is one (label, count) pair of a dashboard grouping. Label is a
// pointer because shipments without a mode group under NULL.
type GroupCount struct {
	Label *string `json:"label"`
	Count int64   `json:"count"`
}

// DashboardSummary feeds the dashboard charts.
type DashboardSummary struct {
	TotalShipments int64        `json:"totalShipments"`
	ModeWise       []GroupCount `json:"modeWise"`
	StatusWise     []GroupCount `json:"statusWise"`
}

// Store creates a new shipment from the raw form field map. The record always
// starts as (ACTIVE, IN_PROCESS); the enquiry number is generated here unless
// the form already carries one.
func (sc *ShipmentController) Store(c *fiber.Ctx) error {
	var req shipmentTypes.ShipmentInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	record, err := normalizer.Normalize(req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}
	record.Status = shipmentModel.StatusActive
	record.DeliveryStatus = shipmentModel.DeliveryInProcess

	warning := sc.refreshPartMaster(sc.DB, record)

	if err := sc.createShipment(sc.DB, record); err != nil {
		logger.Error("Failed to create shipment", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save shipment",
		})
	}

	sc.invalidateDashboard(c)

	logger.Success(fmt.Sprintf("Shipment created with ID %d, enquiry %s", record.ID, *record.EnquiryNo))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Shipment created",
		Warning: warning,
		Data: fiber.Map{
			"id":         record.ID,
			"enquiry_no": *record.EnquiryNo,
		},
	})
}

// Index lists shipments newest-first with offset pagination. DELETED records
// are always excluded; an optional search term matches enquiry number, part
// number, part description and customer, case-insensitively.
func (sc *ShipmentController) Index(c *fiber.Ctx) error {
	page, pageSize := utils.ParsePagination(c)
	search := strings.TrimSpace(c.Query("search"))

	baseQuery := func() *gorm.DB {
		q := sc.DB.Model(&shipmentModel.Shipment{}).
			Where("status <> ?", shipmentModel.StatusDeleted)
		if search != "" {
			term := "%" + strings.ToLower(search) + "%"
			q = q.Where(
				"LOWER(enquiry_no) LIKE ? OR LOWER(part_no) LIKE ? OR LOWER(part_desc) LIKE ? OR LOWER(customer) LIKE ?",
				term, term, term, term,
			)
		}
		return q
	}

	var total int64
	if err := baseQuery().Count(&total).Error; err != nil {
		logger.Error("Failed to count shipments", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch shipments",
		})
	}

	var shipments []shipmentModel.Shipment
	err := baseQuery().
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&shipments).Error
	if err != nil {
		logger.Error("Failed to fetch shipments", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch shipments",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipments fetched",
		Data: fiber.Map{
			"shipments": shipments,
			"page":      page,
			"pageSize":  pageSize,
			"total":     total,
		},
	})
}

// Show fetches one shipment by id.
func (sc *ShipmentController) Show(c *fiber.Ctx) error {
	id, err := utils.ParseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid shipment ID",
		})
	}

	var record shipmentModel.Shipment
	if err := sc.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Shipment not found",
			})
		}
		logger.Error("Failed to fetch shipment", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch shipment",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipment fetched",
		Data:    record,
	})
}

// Update replaces the normalized field set of an existing shipment. The
// lifecycle fields are untouched; those change only through their own
// endpoints.
func (sc *ShipmentController) Update(c *fiber.Ctx) error {
	id, err := utils.ParseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid shipment ID",
		})
	}

	var req shipmentTypes.ShipmentInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	normalized, err := normalizer.Normalize(req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	var record shipmentModel.Shipment
	if err := sc.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Shipment not found",
			})
		}
		logger.Error("Failed to load shipment for update", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Update failed",
		})
	}

	warning := sc.refreshPartMaster(sc.DB, normalized)

	record.AssignData(normalized)
	if err := sc.DB.Save(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "Enquiry number already in use",
			})
		}
		logger.Error("Failed to update shipment", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Update failed",
		})
	}

	sc.invalidateDashboard(c)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipment updated",
		Warning: warning,
		Data:    record,
	})
}

// UpdateDeliveryStatus patches the transit progress of one shipment. Any
// value in the enum is accepted regardless of the previous one; the UI
// presents an order, the backend does not enforce it.
func (sc *ShipmentController) UpdateDeliveryStatus(c *fiber.Ctx) error {
	var req shipmentTypes.DeliveryStatusUpdateRequest
	return sc.patchField(c, &req, func() (string, interface{}, error) {
		if err := req.Validate(); err != nil {
			return "", nil, err
		}
		return "delivery_status", shipmentModel.DeliveryStatus(req.DeliveryStatus), nil
	})
}

// UpdateStatus patches the administrative status. ACTIVE and CANCELLED are
// freely interchangeable; DELETED is reserved and rejected.
func (sc *ShipmentController) UpdateStatus(c *fiber.Ctx) error {
	var req shipmentTypes.StatusUpdateRequest
	return sc.patchField(c, &req, func() (string, interface{}, error) {
		if err := req.Validate(); err != nil {
			return "", nil, err
		}
		return "status", shipmentModel.Status(req.Status), nil
	})
}

// UpdateManualDesc replaces the free-text annotation, independent of
// lifecycle state.
func (sc *ShipmentController) UpdateManualDesc(c *fiber.Ctx) error {
	var req shipmentTypes.ManualDescUpdateRequest
	return sc.patchField(c, &req, func() (string, interface{}, error) {
		if req.ManualDesc == "" {
			return "manual_desc", nil, nil
		}
		return "manual_desc", req.ManualDesc, nil
	})
}

// patchField is the shared single-column patch: parse body, validate, update,
// 404 when the id does not exist.
func (sc *ShipmentController) patchField(c *fiber.Ctx, req interface{}, resolve func() (string, interface{}, error)) error {
	id, err := utils.ParseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid shipment ID",
		})
	}

	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	column, value, err := resolve()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	res := sc.DB.Model(&shipmentModel.Shipment{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		logger.Error("Failed to patch shipment "+column, res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Update failed",
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Shipment not found",
		})
	}

	sc.invalidateDashboard(c)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipment updated",
	})
}

// BulkUpload inserts one shipment per spreadsheet row. Every row must pass
// the normalizer before anything is written; the batch is then inserted in a
// single transaction with per-row enquiry numbers.
func (sc *ShipmentController) BulkUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Spreadsheet file is required",
		})
	}

	f, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded spreadsheet", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Could not read spreadsheet",
		})
	}
	defer f.Close()

	inputs, err := importer.ParseShipments(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	records := make([]*shipmentModel.Shipment, 0, len(inputs))
	for i, in := range inputs {
		if err := in.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: fmt.Sprintf("row %d: %v", i+2, err),
			})
		}
		record, err := normalizer.Normalize(in)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: fmt.Sprintf("row %d: %v", i+2, err),
			})
		}
		record.Status = shipmentModel.StatusActive
		record.DeliveryStatus = shipmentModel.DeliveryInProcess
		records = append(records, record)
	}

	warning := ""
	err = sc.DB.Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			if w := sc.refreshPartMaster(tx, record); w != "" {
				warning = w
			}
			if err := sc.createShipment(tx, record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Bulk upload failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Bulk upload failed",
		})
	}

	sc.invalidateDashboard(c)

	logger.Success(fmt.Sprintf("Bulk upload inserted %d shipments", len(records)))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bulk upload completed",
		Warning: warning,
		Data: fiber.Map{
			"inserted": len(records),
		},
	})
}

// EnquiryNumber previews the next enquiry number without consuming it. When
// generation fails the error is distinguishable so the client can fall back
// to a locally generated placeholder.
func (sc *ShipmentController) EnquiryNumber(c *fiber.Ctx) error {
	no, err := enquiry.NextForNow(sc.DB)
	if err != nil {
		logger.Error("Failed to generate enquiry number", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to generate enquiry number",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Enquiry number generated",
		Data: fiber.Map{
			"enquiryNo": no,
		},
	})
}

// Dashboard returns the total shipment count plus counts grouped by mode and
// by status. The result is cached in Redis for a short TTL when a cache
// client is configured.
func (sc *ShipmentController) Dashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var summary DashboardSummary
	hit, err := sc.Cache.GetJSON(ctx, dashboardCacheKey, &summary)
	if err != nil {
		logger.Warning("Dashboard cache read failed: " + err.Error())
	}
	if hit {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Status:  fiber.StatusOK,
			Message: "Dashboard summary fetched",
			Data:    summary,
		})
	}

	model := func() *gorm.DB { return sc.DB.Model(&shipmentModel.Shipment{}) }

	if err := model().Count(&summary.TotalShipments).Error; err != nil {
		logger.Error("Dashboard count failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Dashboard fetch failed",
		})
	}
	if err := model().Select("mode AS label, COUNT(*) AS count").Group("mode").Scan(&summary.ModeWise).Error; err != nil {
		logger.Error("Dashboard mode grouping failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Dashboard fetch failed",
		})
	}
	if err := model().Select("status AS label, COUNT(*) AS count").Group("status").Scan(&summary.StatusWise).Error; err != nil {
		logger.Error("Dashboard status grouping failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Dashboard fetch failed",
		})
	}

	if err := sc.Cache.SetJSON(ctx, dashboardCacheKey, summary, dashboardCacheTTL()); err != nil {
		logger.Warning("Dashboard cache write failed: " + err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Dashboard summary fetched",
		Data:    summary,
	})
}

// createShipment persists a new record, generating the enquiry number when
// the record has none. The generate-then-insert pair is not atomic; the
// unique index on enquiry_no catches collisions between concurrent creates
// and the loser recomputes and retries. Each attempt runs in its own
// (sub)transaction so a failed insert does not poison an outer transaction.
func (sc *ShipmentController) createShipment(db *gorm.DB, record *shipmentModel.Shipment) error {
	for attempt := 0; attempt < maxEnquiryRetries; attempt++ {
		if record.EnquiryNo == nil {
			no, err := enquiry.NextForNow(db)
			if err != nil {
				return err
			}
			record.EnquiryNo = &no
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(record).Error
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			record.ID = 0
			record.EnquiryNo = nil
			continue
		}
		return err
	}
	return fmt.Errorf("%w: enquiry retries exhausted", enquiry.ErrSequenceUnavailable)
}

// refreshPartMaster upserts the part master when the record carries both a
// part number and a description. This is fire-and-forget relative to the
// shipment write: a failure is logged and surfaced as a warning, never as an
// error. Inside a transaction the upsert runs in a savepoint so its failure
// cannot abort the batch.
func (sc *ShipmentController) refreshPartMaster(db *gorm.DB, record *shipmentModel.Shipment) string {
	if !record.HasPartMasterData() {
		return ""
	}

	entry := partModel.Part{PartNo: *record.PartNo, PartDesc: *record.PartDesc}
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "part_no"}},
			DoUpdates: clause.AssignmentColumns([]string{"part_desc", "updated_at"}),
		}).Create(&entry).Error
	})
	if err != nil {
		logger.Warning(fmt.Sprintf("Part upsert failed for %s: %v", *record.PartNo, err))
		return partUpsertWarning
	}
	return ""
}

func (sc *ShipmentController) invalidateDashboard(c *fiber.Ctx) {
	if err := sc.Cache.Delete(c.UserContext(), dashboardCacheKey); err != nil {
		logger.Warning("Dashboard cache invalidation failed: " + err.Error())
	}
}

func dashboardCacheTTL() time.Duration {
	if raw := os.Getenv("DASHBOARD_CACHE_TTL"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 60 * time.Second
}
