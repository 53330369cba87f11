package pubsub

import "pharmanet/internal/domain/service"

// eventAttributes builds the message attributes subscribers filter on.
func eventAttributes(event *service.DirectoryEvent) map[string]string {
	attributes := map[string]string{
		"type":       event.Type,
		"subject_id": event.SubjectID,
	}
	if event.Role != "" {
		attributes["role"] = event.Role
	}
	if event.PharmacyID != "" {
		attributes["pharmacy_id"] = event.PharmacyID
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
