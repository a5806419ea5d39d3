package handlers

import (
	"errors"
	"net/http"

	"propmart/models"
	"propmart/services/invoice"
	"propmart/services/offer"
	"propmart/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// OfferHandler exposes the offer lifecycle over HTTP.
type OfferHandler struct {
	Service offer.LifecycleService
	Issuer  invoice.Issuer
}

func NewOfferHandler(svc offer.LifecycleService, issuer invoice.Issuer) *OfferHandler {
	return &OfferHandler{Service: svc, Issuer: issuer}
}

// SubmitOfferHandler records a buyer's offer on a property.
func (h *OfferHandler) SubmitOfferHandler(c *gin.Context) {
	var draft offer.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	// The authenticated buyer owns the offer regardless of the body.
	if buyerID := c.GetString("buyerID"); buyerID != "" {
		draft.BuyerID = buyerID
	}

	o, err := h.Service.Submit(c.Request.Context(), draft)
	if err != nil {
		renderOfferError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// GetOfferHandler returns a single offer.
func (h *OfferHandler) GetOfferHandler(c *gin.Context) {
	o, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderOfferError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// ListMyOffersHandler returns the authenticated buyer's offers.
func (h *OfferHandler) ListMyOffersHandler(c *gin.Context) {
	offers, err := h.Service.ListForBuyer(c.Request.Context(), c.GetString("buyerID"))
	if err != nil {
		renderOfferError(c, err)
		return
	}
	if offers == nil {
		offers = []models.Offer{}
	}
	c.JSON(http.StatusOK, offers)
}

// DecideOfferHandler applies an admin approve/reject decision. On approval
// the freshly issued invoice is included in the response.
func (h *OfferHandler) DecideOfferHandler(c *gin.Context) {
	var input struct {
		Decision   string `json:"decision"`
		ReviewerID string `json:"reviewerId"`
		Reason     string `json:"reason,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	o, inv, err := h.Service.Decide(c.Request.Context(), c.Param("id"), input.Decision, input.ReviewerID, input.Reason)
	if err != nil {
		renderOfferError(c, err)
		return
	}

	resp := gin.H{"offer": o}
	if inv != nil {
		resp["invoice"] = inv
	}
	c.JSON(http.StatusOK, resp)
}

// GetOfferInvoiceHandler returns the active invoice for an offer.
func (h *OfferHandler) GetOfferInvoiceHandler(c *gin.Context) {
	inv, err := h.Issuer.LatestForOffer(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "no invoice for offer", c.Param("id"))
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load invoice", err.Error())
		return
	}
	c.JSON(http.StatusOK, inv)
}

func renderOfferError(c *gin.Context, err error) {
	var werr *offer.WorkflowError
	if errors.As(err, &werr) {
		switch werr.Code {
		case offer.CodeNotFound:
			utils.JSONError(c, http.StatusNotFound, "offer not found", werr.Message)
		case offer.CodeInvalidState:
			utils.JSONError(c, http.StatusConflict, "offer already processed", werr.Message)
		default:
			utils.JSONError(c, http.StatusBadRequest, "invalid input", werr.Message)
		}
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "Please try again later", err.Error())
}
