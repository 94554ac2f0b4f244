package list_bookings

import (
	"strconv"

	"github.com/m04kA/SMC-HallBooking/internal/service/bookings/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
func ToServiceRequest(statusStr, pageStr, limitStr string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return nil, err
		}
		req.Page = page
	}

	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}

	return req, nil
}
