// Package crdschema extracts the OpenAPI v3 schemas embedded in Kubernetes
// CustomResourceDefinition manifests and writes each one as a standalone
// JSON Schema file.
//
// The files follow the naming and annotation conventions of kubeval and
// kubeconform, so that those validators can check custom resources against
// them: every schema is named "{kind}-{group}-{version}.json" and carries an
// x-kubernetes-group-version-kind extension and a $schema key.
//
// # Pipeline
//
// [Extractor.Process] handles one multi-document YAML stream:
//
//  1. Parse: [tree.DecodeYAML] decodes every document of the stream into a
//     [tree.Node]. Empty documents become null and are skipped later. Syntax
//     errors fail the whole stream with [ErrInvalidYAML].
//
//  2. Locate: [Locate] skips documents that are not CRDs and returns a
//     [Record] per declared schema. Both the multi-version shape
//     (spec.versions[].schema.openAPIV3Schema) and the legacy single-version
//     shape (spec.version with spec.validation.openAPIV3Schema) are
//     supported, and a document may use both. A legacy CRD without a schema
//     gets a permissive object schema. Schemas holding .inf or .nan are
//     rejected since JSON cannot represent them.
//
//  3. Name: [FileName] derives the filename from the singular name (or
//     kind), the first label of the group, and the version. Each part must
//     be a DNS-1123 label.
//
//  4. Patch: [Patch] adds the group/version/kind extension and $schema.
//
//  5. Emit: [Emitter.Emit] creates the file exclusively. When the file
//     already exists its JSON content is compared structurally with the new
//     schema, ignoring sequence order. The result is [Written],
//     [AlreadyCorrect], or [Conflict]; a conflicting file is never
//     overwritten.
//
// Re-running over the same inputs is therefore a no-op, and two sources that
// map to the same filename with different content surface as a [Conflict]
// rather than silently replacing each other.
//
// # Errors
//
// Missing or mistyped CRD fields are reported as [*FieldError] (matching
// [ErrMissingField]) and invalid filename parts as [*IdentityError]
// (matching [ErrInvalidIdentity]). Non-finite numbers are reported as
// [*SchemaError] (matching [ErrInvalidSchema]) with the path of the value.
// All of these stop processing. Filesystem failures
// other than an existing file match [ErrWriteOutput] or [ErrReadInput].
//
// # Concurrency
//
// An [Extractor] processes inputs sequentially and holds no locks. The only
// protection against concurrent runs writing into the same directory is the
// exclusive create in [Emitter.Emit].
package crdschema
