package resolve

import "fmt"

// Identity is the cloud account context every synthesized identifier is
// scoped to. It is supplied by the caller (flags or a one-time STS lookup at
// the boundary); this package never fetches it itself.
type Identity struct {
	Partition string
	Region    string
	AccountID string
}

// arn formats a regional resource identifier.
func (id Identity) arn(service, resource string) string {
	return fmt.Sprintf("arn:%s:%s:%s:%s:%s", id.Partition, service, id.Region, id.AccountID, resource)
}

// globalARN formats an identifier for services without a region component,
// such as IAM.
func (id Identity) globalARN(service, resource string) string {
	return fmt.Sprintf("arn:%s:%s::%s:%s", id.Partition, service, id.AccountID, resource)
}
