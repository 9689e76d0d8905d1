package httpapi

import "errors"

// errMissingApproval signals an engine inconsistency: NeedsApproval was
// true but no Approval accompanied it.
var errMissingApproval = errors.New("engine reported needsApproval without an approval payload")

// errMissingVault signals an engine inconsistency: an order was returned
// without the input/output vault spec §4.6 "Get order" requires.
var errMissingVault = errors.New("order is missing a required input or output vault")

// errMissingDeploymentArgs signals the engine declined to produce
// deployment transaction args after a successful field-assignment sequence.
var errMissingDeploymentArgs = errors.New("engine returned no deployment transaction args")
