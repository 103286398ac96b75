package inventory

import (
	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
)

// NextRequestStatus valida una transición de la solicitud y devuelve el estado que debe persistirse.
//
//	REQUESTED      -> APPROVED (RETURN_PENDING si es préstamo) | REJECTED
//	RETURN_PENDING -> RETURNED (solo préstamos)
//
// Cualquier otra combinación devuelve ErrInvalidRequestStatus.
func NextRequestStatus(current string, rental bool, target string) (string, error) {
	switch current {
	case entity.RequestRequested:
		switch target {
		case entity.RequestApproved:
			if rental {
				return entity.RequestReturnPending, nil
			}
			return entity.RequestApproved, nil
		case entity.RequestRejected:
			return entity.RequestRejected, nil
		}
	case entity.RequestReturnPending:
		if target == entity.RequestReturned && rental {
			return entity.RequestReturned, nil
		}
	}
	return "", domain.ErrInvalidRequestStatus
}

// NextReturnStatus valida una transición de la devolución: solo RETURN_PENDING admite cambios.
func NextReturnStatus(current, target string) (string, error) {
	if current != entity.ReturnPending {
		return "", domain.ErrInvalidRequestStatus
	}
	switch target {
	case entity.ReturnReturned, entity.ReturnRejected:
		return target, nil
	}
	return "", domain.ErrInvalidRequestStatus
}
