package dto

import (
	"time"

	"guzo_backend/internal/models"
)

// CreateBookingRequest - создание брони туристом.
// totalAmount не принимаем от клиента, сервер считает цену сам.
type CreateBookingRequest struct {
	OfferingID   string               `json:"offeringId" binding:"required,uuid"`
	Date         string               `json:"date" binding:"required,datetime=2006-01-02"`
	TimeSlot     string               `json:"timeSlot" binding:"required"`
	Guests       int                  `json:"guests" binding:"required,min=1"`
	GuestDetails []models.GuestDetail `json:"guestDetails,omitempty"`
	ContactName  string               `json:"contactName" binding:"required"`
	ContactEmail string               `json:"contactEmail" binding:"required,email"`
	ContactPhone string               `json:"contactPhone,omitempty"`
}

// HostDecisionRequest - ответ хоста на pending-бронь
type HostDecisionRequest struct {
	Action   string `json:"action" binding:"required,oneof=confirm reject"`
	Response string `json:"response,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// ListBookingsRequest - фильтры списков «мои брони» / «брони моих офферов»
type ListBookingsRequest struct {
	Status   string `form:"status" validate:"omitempty,is-booking-status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// BookingDTO - представление брони в ответах
type BookingDTO struct {
	ID              string               `json:"id"`
	OfferingID      string               `json:"offeringId"`
	OfferingTitle   string               `json:"offeringTitle,omitempty"`
	OfferingImage   string               `json:"offeringImage,omitempty"`
	TouristID       string               `json:"touristId"`
	HostID          string               `json:"hostId"`
	Date            string               `json:"date"`
	TimeSlot        string               `json:"timeSlot"`
	Guests          int                  `json:"guests"`
	GuestDetails    []models.GuestDetail `json:"guestDetails,omitempty"`
	ContactName     string               `json:"contactName"`
	ContactEmail    string               `json:"contactEmail"`
	ContactPhone    string               `json:"contactPhone,omitempty"`
	TotalAmount     float64              `json:"totalAmount"`
	Currency        string               `json:"currency"`
	DisplayAmount   string               `json:"displayAmount,omitempty"`
	Status          models.BookingStatus `json:"status"`
	HostResponse    string               `json:"hostResponse,omitempty"`
	RejectionReason string               `json:"rejectionReason,omitempty"`
	ConfirmedAt     *time.Time           `json:"confirmedAt,omitempty"`
	CompletedAt     *time.Time           `json:"completedAt,omitempty"`
	CancelledAt     *time.Time           `json:"cancelledAt,omitempty"`
	Payment         *PaymentDTO          `json:"payment,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
}
