// Package guard answers "may actor A perform operation O on entity E".
// Every check is a pure function over already-loaded entities; the guard
// never touches the store and never mutates anything. Handlers call the
// guard first, then the store.
package guard

import "github.com/jannysd28/technohu/internal/models"

// Reason is the machine-readable denial code surfaced to clients.
type Reason string

const (
	ReasonAllowed           Reason = "allowed"
	ReasonNotSeller         Reason = "not_a_seller"
	ReasonSellerNotVerified Reason = "seller_not_verified"
	ReasonNotParticipant    Reason = "not_a_participant"
	ReasonNotOwner          Reason = "not_owner"
	ReasonAdminOnly         Reason = "admin_only"
	ReasonInvalidTransition Reason = "invalid_transition"
	ReasonRoleNotAssignable Reason = "role_not_assignable"
	ReasonStatusAdminOnly   Reason = "status_admin_only"
)

// CanCreateProject: only verified sellers list projects.
func CanCreateProject(actor models.User) (bool, Reason) {
	if !actor.Role.CanSell() {
		return false, ReasonNotSeller
	}
	if actor.Status != models.StatusVerified {
		return false, ReasonSellerNotVerified
	}
	return true, ReasonAllowed
}

// CanCreatePitch mirrors project listing: outreach is a verified-seller
// privilege. The daily quota is enforced separately by the pitch throttle.
func CanCreatePitch(actor models.User) (bool, Reason) {
	return CanCreateProject(actor)
}

// CanViewRequest: the two parties and admins only.
func CanViewRequest(actor models.User, req models.Request) (bool, Reason) {
	if actor.Role == models.RoleAdmin {
		return true, ReasonAllowed
	}
	if actor.ID == req.BuyerID || actor.ID == req.SellerID {
		return true, ReasonAllowed
	}
	return false, ReasonNotParticipant
}

// CanViewPitch: the two parties and admins only.
func CanViewPitch(actor models.User, p models.Pitch) (bool, Reason) {
	if actor.Role == models.RoleAdmin {
		return true, ReasonAllowed
	}
	if actor.ID == p.BuyerID || actor.ID == p.SellerID {
		return true, ReasonAllowed
	}
	return false, ReasonNotParticipant
}

// CanMutateRequestStatus validates both the actor and the transition:
// the seller moves pending to accepted or rejected, the buyer moves
// accepted to completed. Everything else is an invalid transition.
func CanMutateRequestStatus(actor models.User, req models.Request, next models.RequestStatus) (bool, Reason) {
	switch {
	case actor.ID == req.SellerID &&
		req.Status == models.RequestPending &&
		(next == models.RequestAccepted || next == models.RequestRejected):
		return true, ReasonAllowed
	case actor.ID == req.BuyerID &&
		req.Status == models.RequestAccepted &&
		next == models.RequestCompleted:
		return true, ReasonAllowed
	}
	return false, ReasonInvalidTransition
}

// CanCreateUpload: only the request's seller delivers, and only while the
// request is accepted.
func CanCreateUpload(actor models.User, req models.Request) (bool, Reason) {
	if actor.ID != req.SellerID {
		return false, ReasonNotOwner
	}
	if req.Status != models.RequestAccepted {
		return false, ReasonInvalidTransition
	}
	return true, ReasonAllowed
}

// CanVerifySeller: admins verify seller-capable users only.
func CanVerifySeller(actor, target models.User) (bool, Reason) {
	if actor.Role != models.RoleAdmin {
		return false, ReasonAdminOnly
	}
	if !target.Role.CanSell() {
		return false, ReasonNotSeller
	}
	return true, ReasonAllowed
}

// CanUpdateUser gates self-service profile updates. Users edit only their
// own record, may never grant themselves admin, and may not flip their own
// verification status (verified is admin-granted).
func CanUpdateUser(actor models.User, targetID int64, newRole *models.Role, newStatus *models.SellerStatus) (bool, Reason) {
	if actor.ID != targetID {
		return false, ReasonNotOwner
	}
	if newRole != nil && *newRole == models.RoleAdmin {
		return false, ReasonRoleNotAssignable
	}
	if newStatus != nil && *newStatus == models.StatusVerified {
		return false, ReasonStatusAdminOnly
	}
	return true, ReasonAllowed
}
