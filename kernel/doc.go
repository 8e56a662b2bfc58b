// Package kernel provides ready-to-use pairwise force/acceleration
// kernels matching eval.Kernel's signature: Newtonian gravity,
// Coulomb's law, a Plummer-softened gravity variant for close
// encounters, and a MOND (Modified Newtonian Dynamics) kernel. These
// are convenience constructors, not part of the core contract —
// eval.Evaluate accepts any eval.Kernel, caller-written or from here.
package kernel
