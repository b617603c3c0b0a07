// export_test.go exports private functions for white-box testing.
package fs

// NewResolverWithRoots builds a Resolver without the platform installation folders.
var NewResolverWithRoots = newResolver
