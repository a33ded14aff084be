package session

// gpuComputeSource is the path-tracing compute kernel dispatched once
// per frame by the GPU back end. Layout bindings mirror the packed
// buffers packPrimitives/packNodes produce on the host: the primitive
// struct below spends one padding slot on a primitive_kind field (the
// spec's byte layout has no room for distinguishing sphere from cube,
// an oversight once cubes exist — see DESIGN.md).
const gpuComputeSource = `
#version 430

layout(local_size_x = 8, local_size_y = 8) in;

struct Primitive {
	vec4 centerRadius;   // xyz = center, w = radius_or_half_extent
	vec4 albedoFuzz;     // xyz = albedo, w = fuzz_or_ior
	vec4 kinds;          // x = material_kind, y = primitive_kind, zw = pad
};

struct BVHNode {
	vec4 minRight;  // xyz = bbox min, w = second_child_offset (interior) / unused (leaf)
	vec4 maxCount;  // xyz = bbox max, w = primitive_count
	vec4 offsetAxis; // x = primitive_offset, y = split_axis, zw = pad
};

layout(std430, binding = 0) readonly buffer Primitives {
	Primitive primitives[];
};

layout(std430, binding = 1) readonly buffer Nodes {
	BVHNode nodes[];
};

layout(std430, binding = 2) buffer Accum {
	vec4 accum[]; // xyz = running linear-RGB sum, w unused
};

layout(binding = 3, std140) uniform Camera {
	vec4 lookfrom;       // xyz
	vec4 pixel00;        // xyz
	vec4 pixelDeltaU;    // xyz
	vec4 pixelDeltaV;    // xyz
	vec4 defocusDiskU;   // xyz
	vec4 defocusDiskV;   // xyz
	ivec4 dims;          // x = width, y = height, z = max_depth, w = sample_index
	vec4 params;         // x = defocus_angle_degrees, y = node_count, z = prim_count, w unused
};

// Per-invocation 32-bit integer-hash RNG (not Xoshiro256++): seeded from
// pixel coordinates and the current sample index, so it is deterministic
// and decorrelated per pixel, but its stream differs from the host PRNG
// and GPU output is not bit-identical to CPU output.
uint hashU32(uint x) {
	x ^= x >> 16;
	x *= 0x7feb352dU;
	x ^= x >> 15;
	x *= 0x846ca68bU;
	x ^= x >> 16;
	return x;
}

uint rngState;

float nextFloat() {
	rngState = hashU32(rngState);
	return float(rngState) / 4294967296.0;
}

vec3 randomUnitVector() {
	for (int i = 0; i < 64; i++) {
		vec3 p = vec3(nextFloat(), nextFloat(), nextFloat()) * 2.0 - 1.0;
		float lenSq = dot(p, p);
		if (lenSq > 1e-12 && lenSq <= 1.0) {
			return p / sqrt(lenSq);
		}
	}
	return vec3(0.0, 1.0, 0.0);
}

vec3 randomInUnitDisk() {
	for (int i = 0; i < 64; i++) {
		vec3 p = vec3(nextFloat() * 2.0 - 1.0, nextFloat() * 2.0 - 1.0, 0.0);
		if (dot(p, p) < 1.0) {
			return p;
		}
	}
	return vec3(0.0);
}

bool hitAabb(vec3 bmin, vec3 bmax, vec3 origin, vec3 dir, float tMinIn, inout float tMax) {
	float tMin = tMinIn;
	for (int axis = 0; axis < 3; axis++) {
		float o = origin[axis];
		float d = dir[axis];
		float lo = bmin[axis];
		float hi = bmax[axis];
		float invD = 1.0 / d;
		float t0 = (lo - o) * invD;
		float t1 = (hi - o) * invD;
		if (invD < 0.0) {
			float tmp = t0; t0 = t1; t1 = tmp;
		}
		tMin = max(tMin, t0);
		tMax = min(tMax, t1);
		if (tMax <= tMin) {
			return false;
		}
	}
	return true;
}

struct Hit {
	float t;
	vec3 point;
	vec3 normal;
	bool frontFace;
	int primIndex;
};

bool hitSphere(Primitive p, vec3 origin, vec3 dir, float tMin, float tMax, out Hit rec) {
	vec3 center = p.centerRadius.xyz;
	float radius = p.centerRadius.w;
	vec3 oc = center - origin;
	float a = dot(dir, dir);
	float h = dot(dir, oc);
	float c = dot(oc, oc) - radius * radius;
	float disc = h * h - a * c;
	if (disc < 0.0) return false;
	float sq = sqrt(disc);
	float root = (h - sq) / a;
	if (root <= tMin || root >= tMax) {
		root = (h + sq) / a;
		if (root <= tMin || root >= tMax) return false;
	}
	rec.t = root;
	rec.point = origin + dir * root;
	vec3 outward = (rec.point - center) / radius;
	rec.frontFace = dot(dir, outward) < 0.0;
	rec.normal = rec.frontFace ? outward : -outward;
	return true;
}

bool hitCube(Primitive p, vec3 origin, vec3 dir, float tMin, float tMax, out Hit rec) {
	vec3 center = p.centerRadius.xyz;
	vec3 half3 = vec3(p.centerRadius.w);
	vec3 bmin = center - half3;
	vec3 bmax = center + half3;
	float t0 = tMin, t1 = tMax;
	int axisHit = -1;
	float sign = 1.0;
	for (int axis = 0; axis < 3; axis++) {
		float invD = 1.0 / dir[axis];
		float a0 = (bmin[axis] - origin[axis]) * invD;
		float a1 = (bmax[axis] - origin[axis]) * invD;
		float axisSign = -1.0;
		if (invD < 0.0) {
			float tmp = a0; a0 = a1; a1 = tmp;
			axisSign = 1.0;
		}
		if (a0 > t0) { t0 = a0; axisHit = axis; sign = axisSign; }
		if (a1 < t1) t1 = a1;
		if (t1 <= t0) return false;
	}
	if (axisHit < 0 || t0 <= tMin || t0 >= tMax) return false;
	rec.t = t0;
	rec.point = origin + dir * t0;
	vec3 outward = vec3(0.0);
	outward[axisHit] = sign;
	rec.frontFace = dot(dir, outward) < 0.0;
	rec.normal = rec.frontFace ? outward : -outward;
	return true;
}

bool traverse(vec3 origin, vec3 dir, float tMin, float tMax, out Hit best) {
	int stack[32];
	int sp = 0;
	stack[sp++] = 0;
	bool hitAnything = false;
	float closest = tMax;

	while (sp > 0) {
		int idx = stack[--sp];
		BVHNode n = nodes[idx];
		float nodeTMax = closest;
		if (!hitAabb(n.minRight.xyz, n.maxCount.xyz, origin, dir, tMin, nodeTMax)) {
			continue;
		}
		int primCount = int(n.maxCount.w);
		if (primCount > 0) {
			int offset = int(n.offsetAxis.x);
			for (int i = 0; i < primCount; i++) {
				Hit rec;
				Primitive p = primitives[offset + i];
				bool hit = (p.kinds.y < 0.5)
					? hitSphere(p, origin, dir, tMin, closest, rec)
					: hitCube(p, origin, dir, tMin, closest, rec);
				if (hit) {
					hitAnything = true;
					closest = rec.t;
					rec.primIndex = offset + i;
					best = rec;
				}
			}
			continue;
		}
		int near = idx + 1;
		int far = int(n.minRight.w);
		int axis = int(n.offsetAxis.y);
		if (dir[axis] < 0.0) {
			int tmp = near; near = far; far = tmp;
		}
		if (sp + 2 <= 32) {
			stack[sp++] = far;
			stack[sp++] = near;
		}
	}
	return hitAnything;
}

vec3 skyColor(vec3 dir) {
	vec3 unitDir = normalize(dir);
	float a = 0.5 * (unitDir.y + 1.0);
	return mix(vec3(1.0), vec3(0.5, 0.7, 1.0), a);
}

float reflectance(float cosine, float refIdx) {
	float r0 = (1.0 - refIdx) / (1.0 + refIdx);
	r0 = r0 * r0;
	return r0 + (1.0 - r0) * pow(1.0 - cosine, 5.0);
}

vec3 rayColor(vec3 origin, vec3 dir) {
	vec3 attenuation = vec3(1.0);
	int maxDepth = dims.z;

	for (int depth = 0; depth < maxDepth; depth++) {
		Hit rec;
		if (!traverse(origin, dir, 0.001, 1e30, rec)) {
			return attenuation * skyColor(dir);
		}

		Primitive p = primitives[rec.primIndex];
		int materialKind = int(p.kinds.x);

		if (materialKind == 0) { // Lambertian
			vec3 direction = rec.normal + randomUnitVector();
			if (dot(direction, direction) < 1e-16) direction = rec.normal;
			attenuation *= p.albedoFuzz.xyz;
			origin = rec.point;
			dir = direction;
		} else if (materialKind == 1) { // Metallic
			vec3 reflected = reflect(normalize(dir), rec.normal);
			reflected = normalize(reflected) * 1.0 + randomUnitVector() * p.albedoFuzz.w;
			if (dot(reflected, rec.normal) <= 0.0) return vec3(0.0);
			attenuation *= p.albedoFuzz.xyz;
			origin = rec.point;
			dir = reflected;
		} else { // Dielectric
			float ior = p.albedoFuzz.w;
			float ratio = rec.frontFace ? (1.0 / ior) : ior;
			vec3 unitDir = normalize(dir);
			float cosTheta = min(dot(-unitDir, rec.normal), 1.0);
			float sinTheta = sqrt(1.0 - cosTheta * cosTheta);
			bool cannotRefract = ratio * sinTheta > 1.0;
			vec3 outDir;
			if (cannotRefract || reflectance(cosTheta, ratio) > nextFloat()) {
				outDir = reflect(unitDir, rec.normal);
			} else {
				vec3 rOutPerp = (unitDir + rec.normal * cosTheta) * ratio;
				vec3 rOutParallel = rec.normal * -sqrt(abs(1.0 - dot(rOutPerp, rOutPerp)));
				outDir = rOutPerp + rOutParallel;
			}
			origin = rec.point;
			dir = outDir;
		}
	}
	return vec3(0.0);
}

void main() {
	ivec2 pixel = ivec2(gl_GlobalInvocationID.xy);
	if (pixel.x >= dims.x || pixel.y >= dims.y) {
		return;
	}

	rngState = hashU32(uint(pixel.x) * 1973u + uint(pixel.y) * 9277u + uint(dims.w) * 26699u + 1u);

	vec2 jitter = vec2(nextFloat() - 0.5, nextFloat() - 0.5);
	vec3 sample = pixel00.xyz
		+ pixelDeltaU.xyz * (float(pixel.x) + jitter.x)
		+ pixelDeltaV.xyz * (float(pixel.y) + jitter.y);

	vec3 origin = lookfrom.xyz;
	if (params.x > 0.0) {
		vec3 d = randomInUnitDisk();
		origin += defocusDiskU.xyz * d.x + defocusDiskV.xyz * d.y;
	}

	vec3 color = rayColor(origin, sample - origin);

	int index = pixel.y * dims.x + pixel.x;
	accum[index].xyz += color;
}
` + "\x00"
