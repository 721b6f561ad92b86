package config

// SourceFileExt is the extension of files the CLI rewrites by default.
const SourceFileExt = ".rs"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{SourceFileExt}

// ProjectConfigFile is the per-project settings file searched for upward
// from the working directory.
const ProjectConfigFile = ".intogeneric.yaml"

// Synthesized generic parameters are named GenericPrefix followed by the
// zero-based index of the opaque parameter within its signature.
const GenericPrefix = "RewriteImplTrait"

// UnsupportedItemMessage is reported when the marker attribute is placed on
// anything other than a function, trait or impl block.
const UnsupportedItemMessage = "RewriteImplTrait must be used on a Trait, Impl, or Fn definition."

// Marker attribute paths
const (
	AttributeName     = "into_generic"
	AttributeFullPath = "rewrite_impl_trait::into_generic"
)

// DefaultAttributes are the attribute paths that trigger a rewrite.
var DefaultAttributes = []string{AttributeName, AttributeFullPath}

// CompileErrorMacro is emitted in place of the marker attribute when the
// annotated item is rejected.
const CompileErrorMacro = "compile_error!"

// DefaultWorkers bounds concurrent file processing when nothing else does.
const DefaultWorkers = 8
