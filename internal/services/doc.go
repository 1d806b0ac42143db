// Package services implements the application's use cases on top of the
// generator, the upload store and the data processing engine. Every
// dashboard view is recomputed from the merged dataset on each call;
// nothing derived is cached or persisted.
package services
