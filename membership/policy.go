package membership

// ShouldTrack decides whether the candidate node is relevant to the local node:
// coordinators are visible to everyone, a coordinator sees everything, and workers
// and clients only see peers of the same type within the same group.
func ShouldTrack(self, candidate Node) bool {
	if candidate.Type == NodeTypeCoordinator {
		return true
	}

	if self.Type == NodeTypeCoordinator {
		return true
	}

	return candidate.Type == self.Type && candidate.Group == self.Group
}
