// Package files manages the generated report files on disk: listing the
// reports directory, serving individual workbooks and pruning old exports.
package files
