// Package store provides content stores for post documents. FS serves a flat
// directory through fs.FS, Object serves an S3 compatible bucket prefix and
// Watch reports changes to a local content directory.
package store
