// Package runtime supplies the bulk-synchronous execution
// environment spec §5/§6 leaves as an external collaborator: a
// worker scheduler fanning batches out across goroutines, and the
// Thread|Process|Cluster environment selector, with Cluster mode
// coordinating a cross-process progress barrier over Redis pub/sub.
package runtime
